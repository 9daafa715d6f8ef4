// Package urlscan implements the deep URL threat analysis pipeline:
// text-only pattern heuristics plus three network checks (TLS, domain
// registration age, reputation), fused into a single bounded risk score.
package urlscan

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"prism-lab/internal/config"
	"prism-lab/internal/domain/models"
	"prism-lab/pkg/logger"
)

// Aggregation contributions of the network checks on top of the pattern
// score, and the fixed verdict thresholds.
const (
	scoreNoSSL      = 20
	scoreInvalidSSL = 30
	scoreNewDomain  = 25
	scoreIntelBad   = 40

	safeThreshold   = 40
	mediumThreshold = 30
	highThreshold   = 70
)

// VerdictCache stores URL verdicts keyed by the exact URL string. A miss
// is (nil, nil); errors are degradations, not failures.
type VerdictCache interface {
	GetURLVerdict(ctx context.Context, rawURL string) (*models.URLVerdict, error)
	SetURLVerdict(ctx context.Context, rawURL string, v *models.URLVerdict, ttl time.Duration) error
}

// SSLProber abstracts the TLS probe for tests.
type SSLProber interface {
	Check(ctx context.Context, host string) models.SSLCheck
}

// AgeChecker abstracts the registration lookup for tests.
type AgeChecker interface {
	Check(ctx context.Context, domain string) models.DomainAge
}

// Scanner runs the full per-URL pipeline. Zero-valued collaborators are
// allowed: with a nil cache every scan is fresh.
type Scanner struct {
	patterns *PatternAnalyzer
	ssl      SSLProber
	age      AgeChecker
	intel    ThreatIntelProvider
	cache    VerdictCache

	maxConcurrent  int
	cacheSafeTTL   time.Duration
	cacheUnsafeTTL time.Duration
	logger         *logger.Logger
}

// ScannerOption customises a Scanner
type ScannerOption func(*Scanner)

// WithCache enables verdict caching.
func WithCache(c VerdictCache) ScannerOption {
	return func(s *Scanner) { s.cache = c }
}

// WithSSLProber swaps the TLS probe implementation.
func WithSSLProber(p SSLProber) ScannerOption {
	return func(s *Scanner) { s.ssl = p }
}

// WithAgeChecker swaps the registration lookup implementation.
func WithAgeChecker(a AgeChecker) ScannerOption {
	return func(s *Scanner) { s.age = a }
}

// WithIntelProvider swaps the reputation source.
func WithIntelProvider(p ThreatIntelProvider) ScannerOption {
	return func(s *Scanner) { s.intel = p }
}

// NewScanner creates a scanner with live network checkers.
func NewScanner(cfg config.URLScanConfig, log *logger.Logger, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		patterns:       NewPatternAnalyzer(),
		ssl:            NewSSLChecker(cfg.TLSTimeout),
		age:            NewDomainAgeChecker(cfg.RDAPBaseURL, cfg.RDAPTimeout, log),
		intel:          NewSimulatedIntel(),
		maxConcurrent:  cfg.MaxConcurrent,
		cacheSafeTTL:   cfg.CacheSafeTTL,
		cacheUnsafeTTL: cfg.CacheUnsafeTTL,
		logger:         log.WithComponent("urlscan"),
	}
	if s.maxConcurrent <= 0 {
		s.maxConcurrent = 5
	}
	if s.cacheSafeTTL == 0 {
		s.cacheSafeTTL = 5 * time.Minute
	}
	if s.cacheUnsafeTTL == 0 {
		s.cacheUnsafeTTL = time.Hour
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan analyzes one URL end to end. It is total: malformed input and
// failed network checks produce a verdict, never an error.
func (s *Scanner) Scan(ctx context.Context, rawURL string) models.URLVerdict {
	info, err := parseURL(rawURL)
	if err != nil {
		return models.URLVerdict{
			URL:        rawURL,
			RiskScore:  100,
			RiskLevel:  models.URLRiskHigh,
			IsSafe:     false,
			Warnings:   []string{"Malformed URL"},
			DomainInfo: models.DomainInfo{FullURL: rawURL, Error: err.Error()},
			CheckedAt:  time.Now().UTC(),
		}
	}

	if s.cache != nil {
		if cached, cacheErr := s.cache.GetURLVerdict(ctx, rawURL); cacheErr != nil {
			s.logger.Warn().Err(cacheErr).Msg("verdict cache read failed")
		} else if cached != nil {
			cached.CacheHit = true
			return *cached
		}
	}

	pattern := s.patterns.Analyze(rawURL, info.Domain)
	ssl := s.ssl.Check(ctx, info.Domain)
	age := s.age.Check(ctx, info.Domain)
	intel := s.intel.Lookup(ctx, info.Domain, pattern.RiskScore)

	verdict := s.aggregate(rawURL, info, pattern, ssl, age, intel)

	if s.cache != nil {
		ttl := s.cacheUnsafeTTL
		if verdict.IsSafe {
			ttl = s.cacheSafeTTL
		}
		if cacheErr := s.cache.SetURLVerdict(ctx, rawURL, &verdict, ttl); cacheErr != nil {
			s.logger.Warn().Err(cacheErr).Msg("verdict cache write failed")
		}
	}
	return verdict
}

// ScanBatch scans URLs in parallel, bounded by maxConcurrent. Results keep
// input order.
func (s *Scanner) ScanBatch(ctx context.Context, urls []string) []models.URLVerdict {
	results := make([]models.URLVerdict, len(urls))

	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = s.Scan(ctx, u)
		}(i, u)
	}
	wg.Wait()

	return results
}

// aggregate fuses the sub-check results into the final verdict. Warnings
// keep check-execution order: pattern, SSL, domain age, threat intel.
// Unavailable checks contribute nothing.
func (s *Scanner) aggregate(rawURL string, info models.DomainInfo, pattern models.PatternAnalysis, ssl models.SSLCheck, age models.DomainAge, intel models.ThreatIntel) models.URLVerdict {
	score := pattern.RiskScore
	warnings := append([]string{}, pattern.Indicators...)

	if ssl.Status == models.CheckStatusOK {
		if !ssl.HasSSL {
			score += scoreNoSSL
			warnings = append(warnings, "No HTTPS/SSL on this site")
		} else if !ssl.Valid {
			score += scoreInvalidSSL
			warnings = append(warnings, "SSL certificate is invalid")
		}
	}

	if age.Status == models.CheckStatusOK && age.IsNew {
		score += scoreNewDomain
		warnings = append(warnings, fmt.Sprintf("Domain registered only %d days ago", age.AgeDays))
	}

	if intel.Status == models.CheckStatusOK && !intel.IsSafe {
		score += scoreIntelBad
		warnings = append(warnings, "Domain flagged as "+intel.ThreatType+" by threat intelligence")
	}

	if score > 100 {
		score = 100
	}

	return models.URLVerdict{
		URL:             rawURL,
		RiskScore:       score,
		RiskLevel:       riskLevelForScore(score),
		IsSafe:          score < safeThreshold,
		Warnings:        warnings,
		DomainInfo:      info,
		PatternAnalysis: &pattern,
		SSLCheck:        &ssl,
		DomainAge:       &age,
		ThreatIntel:     &intel,
		CheckedAt:       time.Now().UTC(),
	}
}

// riskLevelForScore maps a score onto the LOW/MEDIUM/HIGH buckets.
func riskLevelForScore(score int) models.URLRiskLevel {
	switch {
	case score >= highThreshold:
		return models.URLRiskHigh
	case score >= mediumThreshold:
		return models.URLRiskMedium
	default:
		return models.URLRiskLow
	}
}

// parseURL validates the URL and extracts its parts. Schemeless shortener
// paths like bit.ly/x get an implicit http scheme first.
func parseURL(rawURL string) (models.DomainInfo, error) {
	candidate := rawURL
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return models.DomainInfo{}, err
	}
	if parsed.Hostname() == "" {
		return models.DomainInfo{}, fmt.Errorf("url has no host")
	}

	return models.DomainInfo{
		Domain:  parsed.Hostname(),
		Scheme:  parsed.Scheme,
		Path:    parsed.Path,
		FullURL: rawURL,
	}, nil
}
