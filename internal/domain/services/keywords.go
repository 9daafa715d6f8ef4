package services

import (
	"strings"

	"prism-lab/internal/domain/models"
)

// Category names recognised by the extractor. Order is significant: match
// lists are built category by category in this order.
const (
	CategoryUrgency      = "urgency"
	CategoryFinancial    = "financial"
	CategoryAction       = "action_required"
	CategoryThreats      = "threats"
	CategoryPersonalInfo = "personal_info"
)

// CategoryTable is process-wide immutable configuration mapping category
// names to ordered trigger keyword lists, Latin and non-Latin scripts
// alike. It is loaded once at startup and is safe for unsynchronized
// concurrent reads; it must never be mutated per request.
type CategoryTable struct {
	categories []string
	keywords   map[string][]string
}

// DefaultCategoryTable returns the built-in multilingual trigger table.
func DefaultCategoryTable() *CategoryTable {
	return &CategoryTable{
		categories: []string{
			CategoryUrgency,
			CategoryFinancial,
			CategoryAction,
			CategoryThreats,
			CategoryPersonalInfo,
		},
		keywords: map[string][]string{
			CategoryUrgency: {
				"urgent", "immediately", "now", "hurry", "limited time", "expire",
				"तुरंत", "जल्दी", "अभी", "समाप्त",
			},
			CategoryFinancial: {
				"bank", "account", "credit card", "debit card", "payment", "refund",
				"winner", "prize", "lottery", "money", "cash", "reward",
				"बैंक", "खाता", "पैसे", "रिफंड", "पुरस्कार", "लॉटरी",
			},
			CategoryAction: {
				"verify", "confirm", "update", "click", "link", "activate",
				"suspend", "blocked", "locked", "security",
				"सत्यापित", "अपडेट", "क्लिक", "लिंक", "ब्लॉक",
			},
			CategoryThreats: {
				"suspended", "terminated", "legal", "police", "arrest", "fine",
				"कार्रवाई", "कानूनी", "पुलिस", "जुर्माना",
			},
			CategoryPersonalInfo: {
				"password", "pin", "otp", "cvv", "ssn", "aadhar", "pan",
				"पासवर्ड", "पिन", "ओटीपी", "आधार",
			},
		},
	}
}

// Categories returns the category names in table order
func (t *CategoryTable) Categories() []string {
	return t.categories
}

// Keywords returns the ordered trigger list for a category
func (t *CategoryTable) Keywords(category string) []string {
	return t.keywords[category]
}

// KeywordExtractor scans text for the configured trigger keywords.
type KeywordExtractor struct {
	table *CategoryTable
}

// NewKeywordExtractor creates an extractor over the given table
func NewKeywordExtractor(table *CategoryTable) *KeywordExtractor {
	return &KeywordExtractor{table: table}
}

// Extract case-insensitively scans text for every keyword, independently
// per category. Categories with zero hits are omitted from CategoryCounts.
// A keyword listed under two categories is counted in both; this
// double-counting is deliberate and mirrors the rule table exactly.
func (e *KeywordExtractor) Extract(text string) models.ExtractionResult {
	textLower := strings.ToLower(text)

	result := models.ExtractionResult{
		Keywords:       []string{},
		CategoryCounts: make(map[string]int),
	}

	for _, category := range e.table.categories {
		count := 0
		for _, keyword := range e.table.keywords[category] {
			if strings.Contains(textLower, strings.ToLower(keyword)) {
				result.Keywords = append(result.Keywords, keyword)
				count++
			}
		}
		if count > 0 {
			result.CategoryCounts[category] = count
		}
	}

	return result
}
