package models

import "time"

// URLRiskLevel buckets a URL risk score via fixed thresholds
type URLRiskLevel string

const (
	URLRiskLow    URLRiskLevel = "LOW"
	URLRiskMedium URLRiskLevel = "MEDIUM"
	URLRiskHigh   URLRiskLevel = "HIGH"
)

// CheckStatus reports how a single sub-check concluded. Sub-checks degrade
// independently: a failed check yields a partial or unavailable result, never
// an error that aborts the URL's analysis.
type CheckStatus string

const (
	CheckStatusOK          CheckStatus = "ok"
	CheckStatusPartial     CheckStatus = "partial"
	CheckStatusUnavailable CheckStatus = "unavailable"
)

// DomainInfo is the parsed breakdown of a scanned URL
type DomainInfo struct {
	Domain  string `json:"domain"`
	Scheme  string `json:"scheme"`
	Path    string `json:"path"`
	FullURL string `json:"full_url"`
	Error   string `json:"error,omitempty"`
}

// PatternAnalysis is the I/O-free heuristic sub-result
type PatternAnalysis struct {
	Indicators  []string `json:"indicators"`
	RiskScore   int      `json:"risk_score"`
	CheckPassed bool     `json:"pattern_check_passed"`
}

// SSLCheck is the TLS probe sub-result
type SSLCheck struct {
	Status        CheckStatus `json:"status"`
	HasSSL        bool        `json:"has_ssl"`
	Valid         bool        `json:"valid"`
	Issuer        string      `json:"issuer,omitempty"`
	Subject       string      `json:"subject,omitempty"`
	ExpiresInDays int         `json:"expires_in_days,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// DomainAge is the registration-metadata sub-result
type DomainAge struct {
	Status       CheckStatus `json:"status"`
	AgeDays      int         `json:"age_days,omitempty"`
	CreationDate string      `json:"creation_date,omitempty"`
	IsNew        bool        `json:"is_new"`
	Registrar    string      `json:"registrar,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// ThreatIntelConfidence grades a reputation verdict
type ThreatIntelConfidence string

const (
	ThreatIntelConfidenceLow    ThreatIntelConfidence = "LOW"
	ThreatIntelConfidenceMedium ThreatIntelConfidence = "MEDIUM"
	ThreatIntelConfidenceHigh   ThreatIntelConfidence = "HIGH"
)

// ThreatIntel is the reputation sub-result
type ThreatIntel struct {
	Status     CheckStatus           `json:"status"`
	IsSafe     bool                  `json:"is_safe"`
	ThreatType string                `json:"threat_type,omitempty"`
	Confidence ThreatIntelConfidence `json:"confidence,omitempty"`
	Source     string                `json:"source,omitempty"`
}

// URLVerdict is the aggregated deep-scan result for one URL. Warnings keep
// check-execution order: pattern, SSL, domain age, threat intel.
type URLVerdict struct {
	URL       string       `json:"url"`
	RiskScore int          `json:"risk_score"`
	RiskLevel URLRiskLevel `json:"risk_level"`
	IsSafe    bool         `json:"is_safe"`
	Warnings  []string     `json:"warnings"`

	DomainInfo      DomainInfo       `json:"domain_info"`
	PatternAnalysis *PatternAnalysis `json:"pattern_analysis,omitempty"`
	SSLCheck        *SSLCheck        `json:"ssl_check,omitempty"`
	DomainAge       *DomainAge       `json:"domain_age,omitempty"`
	ThreatIntel     *ThreatIntel     `json:"threat_intel,omitempty"`

	CacheHit  bool      `json:"cache_hit,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
