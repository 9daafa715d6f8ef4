package urlscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism-lab/internal/config"
	"prism-lab/internal/domain/models"
	"prism-lab/pkg/logger"
)

type stubSSL struct{ result models.SSLCheck }

func (s stubSSL) Check(_ context.Context, _ string) models.SSLCheck { return s.result }

type stubAge struct{ result models.DomainAge }

func (s stubAge) Check(_ context.Context, _ string) models.DomainAge { return s.result }

type stubIntel struct{ result models.ThreatIntel }

func (s stubIntel) Lookup(_ context.Context, _ string, _ int) models.ThreatIntel { return s.result }

func newTestScanner(t *testing.T, ssl models.SSLCheck, age models.DomainAge, intel models.ThreatIntel) *Scanner {
	t.Helper()
	return NewScanner(config.URLScanConfig{}, logger.NewDefault(),
		WithSSLProber(stubSSL{ssl}),
		WithAgeChecker(stubAge{age}),
		WithIntelProvider(stubIntel{intel}),
	)
}

func healthyChecks() (models.SSLCheck, models.DomainAge, models.ThreatIntel) {
	return models.SSLCheck{Status: models.CheckStatusOK, HasSSL: true, Valid: true},
		models.DomainAge{Status: models.CheckStatusOK, AgeDays: 4000},
		models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: true}
}

func TestScanCleanURL(t *testing.T) {
	ssl, age, intel := healthyChecks()
	s := newTestScanner(t, ssl, age, intel)

	verdict := s.Scan(context.Background(), "https://example.com/about")

	assert.Equal(t, 0, verdict.RiskScore)
	assert.Equal(t, models.URLRiskLow, verdict.RiskLevel)
	assert.True(t, verdict.IsSafe)
	assert.Empty(t, verdict.Warnings)
	assert.Equal(t, "example.com", verdict.DomainInfo.Domain)
	assert.Equal(t, "https", verdict.DomainInfo.Scheme)
	assert.False(t, verdict.CheckedAt.IsZero())
}

func TestScanMalformedURL(t *testing.T) {
	ssl, age, intel := healthyChecks()
	s := newTestScanner(t, ssl, age, intel)

	verdict := s.Scan(context.Background(), "http://")

	assert.Equal(t, 100, verdict.RiskScore)
	assert.Equal(t, models.URLRiskHigh, verdict.RiskLevel)
	assert.False(t, verdict.IsSafe)
	assert.Equal(t, []string{"Malformed URL"}, verdict.Warnings)
	assert.NotEmpty(t, verdict.DomainInfo.Error)
	// Sub-checks never run on malformed input.
	assert.Nil(t, verdict.PatternAnalysis)
	assert.Nil(t, verdict.SSLCheck)
}

func TestScanAggregation(t *testing.T) {
	tests := []struct {
		name          string
		ssl           models.SSLCheck
		age           models.DomainAge
		intel         models.ThreatIntel
		expectedScore int
		isSafe        bool
	}{
		{
			name:          "no ssl adds 20",
			ssl:           models.SSLCheck{Status: models.CheckStatusOK, HasSSL: false},
			age:           models.DomainAge{Status: models.CheckStatusOK, AgeDays: 4000},
			intel:         models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: true},
			expectedScore: 20,
			isSafe:        true,
		},
		{
			name:          "invalid ssl adds 30",
			ssl:           models.SSLCheck{Status: models.CheckStatusOK, HasSSL: true, Valid: false},
			age:           models.DomainAge{Status: models.CheckStatusOK, AgeDays: 4000},
			intel:         models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: true},
			expectedScore: 30,
			isSafe:        true,
		},
		{
			name:          "new domain adds 25",
			ssl:           models.SSLCheck{Status: models.CheckStatusOK, HasSSL: true, Valid: true},
			age:           models.DomainAge{Status: models.CheckStatusOK, AgeDays: 30, IsNew: true},
			intel:         models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: true},
			expectedScore: 25,
			isSafe:        true,
		},
		{
			name:          "flagged by intel adds 40",
			ssl:           models.SSLCheck{Status: models.CheckStatusOK, HasSSL: true, Valid: true},
			age:           models.DomainAge{Status: models.CheckStatusOK, AgeDays: 4000},
			intel:         models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: false, ThreatType: "malicious"},
			expectedScore: 40,
			isSafe:        false,
		},
		{
			name:          "unavailable checks contribute nothing",
			ssl:           models.SSLCheck{Status: models.CheckStatusUnavailable},
			age:           models.DomainAge{Status: models.CheckStatusUnavailable},
			intel:         models.ThreatIntel{Status: models.CheckStatusUnavailable},
			expectedScore: 0,
			isSafe:        true,
		},
		{
			name:          "all network checks bad stack up",
			ssl:           models.SSLCheck{Status: models.CheckStatusOK, HasSSL: true, Valid: false},
			age:           models.DomainAge{Status: models.CheckStatusOK, AgeDays: 10, IsNew: true},
			intel:         models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: false, ThreatType: "malicious"},
			expectedScore: 95,
			isSafe:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(t, tt.ssl, tt.age, tt.intel)
			verdict := s.Scan(context.Background(), "https://example.com")

			assert.Equal(t, tt.expectedScore, verdict.RiskScore)
			assert.Equal(t, tt.isSafe, verdict.IsSafe)
		})
	}
}

func TestScanRiskLevels(t *testing.T) {
	assert.Equal(t, models.URLRiskLow, riskLevelForScore(0))
	assert.Equal(t, models.URLRiskLow, riskLevelForScore(29))
	assert.Equal(t, models.URLRiskMedium, riskLevelForScore(30))
	assert.Equal(t, models.URLRiskMedium, riskLevelForScore(69))
	assert.Equal(t, models.URLRiskHigh, riskLevelForScore(70))
	assert.Equal(t, models.URLRiskHigh, riskLevelForScore(100))
}

func TestScanWarningsKeepCheckOrder(t *testing.T) {
	s := newTestScanner(t,
		models.SSLCheck{Status: models.CheckStatusOK, HasSSL: false},
		models.DomainAge{Status: models.CheckStatusOK, AgeDays: 10, IsNew: true},
		models.ThreatIntel{Status: models.CheckStatusOK, IsSafe: false, ThreatType: "suspicious"},
	)

	verdict := s.Scan(context.Background(), "http://192.168.1.1/login.php")
	require.GreaterOrEqual(t, len(verdict.Warnings), 4)

	// Pattern indicators first, then SSL, domain age, threat intel.
	assert.Contains(t, verdict.Warnings[0], "IP address")
	last := len(verdict.Warnings)
	assert.Contains(t, verdict.Warnings[last-3], "No HTTPS")
	assert.Contains(t, verdict.Warnings[last-2], "days ago")
	assert.Contains(t, verdict.Warnings[last-1], "threat intelligence")
}

func TestScanBatchKeepsOrder(t *testing.T) {
	ssl, age, intel := healthyChecks()
	s := newTestScanner(t, ssl, age, intel)

	urls := []string{"https://a.example", "https://b.example", "https://c.example"}
	results := s.ScanBatch(context.Background(), urls)

	require.Len(t, results, 3)
	for i, u := range urls {
		assert.Equal(t, u, results[i].URL)
	}
}

func TestParseURL(t *testing.T) {
	t.Run("scheme qualified", func(t *testing.T) {
		info, err := parseURL("https://example.com/path?q=1")
		require.NoError(t, err)
		assert.Equal(t, "example.com", info.Domain)
		assert.Equal(t, "https", info.Scheme)
		assert.Equal(t, "/path", info.Path)
	})

	t.Run("schemeless shortener", func(t *testing.T) {
		info, err := parseURL("bit.ly/abc123")
		require.NoError(t, err)
		assert.Equal(t, "bit.ly", info.Domain)
		assert.Equal(t, "http", info.Scheme)
	})

	t.Run("no host", func(t *testing.T) {
		_, err := parseURL("http://")
		assert.Error(t, err)
	})
}
