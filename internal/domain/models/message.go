package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageSource tags where a message came from
type MessageSource string

const (
	MessageSourceText MessageSource = "text"
	MessageSourceOCR  MessageSource = "ocr"
	MessageSourceAPI  MessageSource = "api"
)

// Message is a single immutable input to the analysis pipeline. It exists
// only for the duration of one analysis call and is never persisted by the
// core itself.
type Message struct {
	ID     uuid.UUID     `json:"id"`
	Text   string        `json:"text"`
	Source MessageSource `json:"source,omitempty"`
}

// RiskLevel is the categorical verdict for a message
type RiskLevel string

const (
	RiskLevelSafe       RiskLevel = "Safe"
	RiskLevelSuspicious RiskLevel = "Suspicious"
	RiskLevelScam       RiskLevel = "Scam"
)

// Confidence holds the classifier probabilities as rounded percentages
type Confidence struct {
	Safe float64 `json:"safe"`
	Scam float64 `json:"scam"`
}

// Indicators are the boolean signals surfaced to UI layers
type Indicators struct {
	HasUrgency           bool `json:"has_urgency"`
	HasFinancialTerms    bool `json:"has_financial_terms"`
	HasActionRequired    bool `json:"has_action_required"`
	HasThreats           bool `json:"has_threats"`
	RequestsPersonalInfo bool `json:"requests_personal_info"`
	ContainsURLs         bool `json:"contains_urls"`
	ContainsPhone        bool `json:"contains_phone"`
}

// RiskVerdict is the fused analysis result for one message. Produced once
// per message and never mutated after creation.
type RiskVerdict struct {
	ID           uuid.UUID     `json:"id"`
	Text         string        `json:"text"`
	Source       MessageSource `json:"source,omitempty"`
	Language     string        `json:"language"`
	LanguageCode string        `json:"language_code"`
	Prediction   RiskLevel     `json:"prediction"`
	RiskScore    int           `json:"risk_score"`

	Confidence Confidence `json:"confidence"`

	SuspiciousKeywords []string       `json:"suspicious_keywords"`
	KeywordCategories  map[string]int `json:"keyword_categories"`

	URLsFound         []string `json:"urls_found"`
	PhoneNumbersFound []string `json:"phone_numbers_found"`

	Indicators Indicators `json:"indicators"`

	// URLVerdicts carries the deep-scan result for every extracted URL.
	URLVerdicts []URLVerdict `json:"url_verdicts,omitempty"`

	Explanation string    `json:"explanation,omitempty"`
	AnalyzedAt  time.Time `json:"analyzed_at"`
}

// ExtractionResult is the output of the keyword/category extractor.
// Keywords keep insertion order (category order, then keyword order within
// a category); CategoryCounts omits categories with zero hits.
type ExtractionResult struct {
	Keywords       []string       `json:"keywords"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// ClassifierOutput is the black-box model signal: a probability pair with
// Safe+Scam == 1, each in [0,1].
type ClassifierOutput struct {
	Safe float64 `json:"safe"`
	Scam float64 `json:"scam"`
}
