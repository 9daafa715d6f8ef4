package urlscan

import (
	"regexp"
	"strings"

	"prism-lab/internal/domain/models"
)

// Additive pattern-score contributions. Each heuristic fires at most once
// except the keyword rule, which stacks up to three hits.
const (
	patternIPLiteral     = 30
	patternSuspiciousTLD = 20
	patternManyDots      = 15
	patternManyEncoded   = 15
	patternKeywordHit    = 10
	patternKeywordMax    = 3
	patternLongURL       = 10
	patternAtSign        = 25
	patternShortener     = 5

	patternPassThreshold = 30
	patternLongLength    = 150
)

// suspiciousTLDs are cheap registries heavily abused by phishing campaigns.
var suspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".work", ".click",
}

// suspiciousURLKeywords are path/host tokens common in credential phishing.
var suspiciousURLKeywords = []string{
	"login", "verify", "secure", "account", "update", "confirm",
	"banking", "alert", "suspended", "locked", "credential",
}

var knownShorteners = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "ow.ly", "t.co", "is.gd",
}

var (
	ipHostPattern  = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	encodedPattern = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
)

// PatternAnalyzer scores a URL from its text alone. It performs no I/O and
// is safe for concurrent use.
type PatternAnalyzer struct{}

// NewPatternAnalyzer creates a new PatternAnalyzer
func NewPatternAnalyzer() *PatternAnalyzer {
	return &PatternAnalyzer{}
}

// Analyze applies every heuristic to the URL, clamps the sum to [0,100]
// and marks the check passed when the score stays under 30.
func (p *PatternAnalyzer) Analyze(rawURL, host string) models.PatternAnalysis {
	lower := strings.ToLower(rawURL)
	hostLower := strings.ToLower(host)

	result := models.PatternAnalysis{Indicators: []string{}}
	score := 0

	if ipHostPattern.MatchString(hostLower) {
		score += patternIPLiteral
		result.Indicators = append(result.Indicators, "URL uses an IP address instead of a domain name")
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(hostLower, tld) {
			score += patternSuspiciousTLD
			result.Indicators = append(result.Indicators, "Domain uses a TLD frequently abused by scammers ("+tld+")")
			break
		}
	}

	if strings.Count(hostLower, ".") > 3 {
		score += patternManyDots
		result.Indicators = append(result.Indicators, "Excessive subdomain nesting")
	}

	if len(encodedPattern.FindAllString(lower, -1)) > 3 {
		score += patternManyEncoded
		result.Indicators = append(result.Indicators, "Heavy percent-encoding may hide the real destination")
	}

	keywordHits := 0
	for _, kw := range suspiciousURLKeywords {
		if strings.Contains(lower, kw) {
			keywordHits++
			result.Indicators = append(result.Indicators, "Contains phishing keyword '"+kw+"'")
			if keywordHits == patternKeywordMax {
				break
			}
		}
	}
	score += keywordHits * patternKeywordHit

	if len(rawURL) > patternLongLength {
		score += patternLongURL
		result.Indicators = append(result.Indicators, "Unusually long URL")
	}

	if strings.Contains(rawURL, "@") {
		score += patternAtSign
		result.Indicators = append(result.Indicators, "Contains '@' which can mask the real host")
	}

	for _, shortener := range knownShorteners {
		if strings.Contains(hostLower, shortener) {
			score += patternShortener
			result.Indicators = append(result.Indicators, "Uses a URL shortener that hides the destination")
			break
		}
	}

	if score > 100 {
		score = 100
	}
	result.RiskScore = score
	result.CheckPassed = score < patternPassThreshold
	return result
}
