package urlscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternAnalyzer(t *testing.T) {
	p := NewPatternAnalyzer()

	tests := []struct {
		name          string
		rawURL        string
		host          string
		expectedScore int
		passed        bool
	}{
		{
			name:          "clean url",
			rawURL:        "https://example.com/about",
			host:          "example.com",
			expectedScore: 0,
			passed:        true,
		},
		{
			name:          "ip literal with phishing keyword",
			rawURL:        "http://192.168.1.1/login.php",
			host:          "192.168.1.1",
			expectedScore: 40, // 30 ip + 10 keyword
			passed:        false,
		},
		{
			name:          "suspicious tld",
			rawURL:        "http://free-prizes.tk",
			host:          "free-prizes.tk",
			expectedScore: 20,
			passed:        true,
		},
		{
			name:          "shortener",
			rawURL:        "https://bit.ly/abc123",
			host:          "bit.ly",
			expectedScore: 5,
			passed:        true,
		},
		{
			name:          "at sign masking",
			rawURL:        "http://trusted.com@evil.example",
			host:          "evil.example",
			expectedScore: 25,
			passed:        true,
		},
		{
			name:          "deep subdomain nesting",
			rawURL:        "http://a.b.c.d.example.com",
			host:          "a.b.c.d.example.com",
			expectedScore: 15,
			passed:        true,
		},
		{
			name:          "stacked keywords cap at three",
			rawURL:        "http://example.com/login-verify-secure-account-update",
			host:          "example.com",
			expectedScore: 30, // 3 * 10, further keywords ignored
			passed:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Analyze(tt.rawURL, tt.host)
			assert.Equal(t, tt.expectedScore, result.RiskScore)
			assert.Equal(t, tt.passed, result.CheckPassed)
		})
	}
}

func TestPatternAnalyzerLongURL(t *testing.T) {
	p := NewPatternAnalyzer()

	long := "http://example.com/" + strings.Repeat("x", 160)
	result := p.Analyze(long, "example.com")
	assert.Equal(t, 10, result.RiskScore)
}

func TestPatternAnalyzerHeavyEncoding(t *testing.T) {
	p := NewPatternAnalyzer()

	result := p.Analyze("http://example.com/%41%42%43%44", "example.com")
	assert.Equal(t, 15, result.RiskScore)
}

func TestPatternScoreClamped(t *testing.T) {
	p := NewPatternAnalyzer()

	// Every heuristic at once still stays within [0,100].
	worst := "http://user@login-verify-secure.1.2.3.4.update.account.tk/%41%42%43%44" + strings.Repeat("e", 160)
	result := p.Analyze(worst, "1.2.3.4.update.account.tk")
	assert.LessOrEqual(t, result.RiskScore, 100)
	assert.False(t, result.CheckPassed)
	assert.NotEmpty(t, result.Indicators)
}
