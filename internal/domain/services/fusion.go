package services

import "prism-lab/internal/domain/models"

// Risk fusion weights. The model signal dominates at 70%; rule-based
// keyword hits cap out at 20%; URL and phone presence add 5% each.
const (
	fusionModelWeight     = 70
	fusionKeywordWeight   = 4
	fusionKeywordCap      = 20
	fusionURLBonus        = 5
	fusionPhoneBonus      = 5
	riskLevelScamFloor    = 70
	riskLevelSuspectFloor = 40
)

// FuseRiskScore combines the classifier's scam probability with the
// rule-based signals into a bounded [0,100] score. It is deterministic and
// monotonic non-decreasing in every input.
func FuseRiskScore(pScam float64, keywordCount int, hasURLs, hasPhones bool) int {
	score := pScam * fusionModelWeight

	keywordScore := keywordCount * fusionKeywordWeight
	if keywordScore > fusionKeywordCap {
		keywordScore = fusionKeywordCap
	}
	score += float64(keywordScore)

	if hasURLs {
		score += fusionURLBonus
	}
	if hasPhones {
		score += fusionPhoneBonus
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

// RiskLevelForScore is the total function mapping a score to its bucket:
// 70 and above is Scam, 40 and above is Suspicious, the rest is Safe.
func RiskLevelForScore(score int) models.RiskLevel {
	switch {
	case score >= riskLevelScamFloor:
		return models.RiskLevelScam
	case score >= riskLevelSuspectFloor:
		return models.RiskLevelSuspicious
	default:
		return models.RiskLevelSafe
	}
}
