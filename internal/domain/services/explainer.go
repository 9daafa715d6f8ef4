package services

import (
	"fmt"
	"strings"

	"prism-lab/internal/domain/models"
)

// Explain renders a deterministic human-readable explanation of a verdict:
// a banner line keyed by the risk level, then one bullet per raised
// indicator in fixed order.
func Explain(v *models.RiskVerdict) string {
	var lines []string

	switch v.Prediction {
	case models.RiskLevelScam:
		lines = append(lines, "HIGH RISK: This message shows strong indicators of a scam.")
	case models.RiskLevelSuspicious:
		lines = append(lines, "SUSPICIOUS: This message contains warning signs.")
	default:
		lines = append(lines, "SAFE: This message appears legitimate.")
	}

	ind := v.Indicators
	if ind.HasUrgency {
		lines = append(lines, "• Uses urgency tactics to pressure you")
	}
	if ind.HasFinancialTerms {
		lines = append(lines, "• Mentions financial rewards or payments")
	}
	if ind.HasActionRequired {
		lines = append(lines, "• Demands immediate action (click, verify, update)")
	}
	if ind.HasThreats {
		lines = append(lines, "• Contains threats or legal warnings")
	}
	if ind.RequestsPersonalInfo {
		lines = append(lines, "• Asks for sensitive personal information")
	}
	if ind.ContainsURLs {
		lines = append(lines, fmt.Sprintf("• Contains %d suspicious link(s)", len(v.URLsFound)))
	}
	if ind.ContainsPhone {
		lines = append(lines, fmt.Sprintf("• Contains %d phone number(s)", len(v.PhoneNumbersFound)))
	}

	return strings.Join(lines, "\n")
}
