package classifier

import (
	"context"
	"strings"

	"prism-lab/internal/domain/models"
)

// Mock is a deterministic in-process classifier for tests and offline
// development. It scores by keyword presence only, so fixtures can steer
// it without a model server.
type Mock struct {
	// Fixed, when set, is returned for every input.
	Fixed *models.ClassifierOutput
	// Err, when set, is returned for every input.
	Err error
}

var mockScamMarkers = []string{
	"lottery", "winner", "prize", "urgent", "verify", "suspended",
	"click here", "act now", "congratulations",
}

// Predict returns Fixed or Err when set, otherwise a keyword-derived score.
func (m *Mock) Predict(_ context.Context, text string) (models.ClassifierOutput, error) {
	if m.Err != nil {
		return models.ClassifierOutput{}, m.Err
	}
	if m.Fixed != nil {
		return *m.Fixed, nil
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, marker := range mockScamMarkers {
		if strings.Contains(lower, marker) {
			hits++
		}
	}

	scam := 0.05 + 0.3*float64(hits)
	if scam > 0.99 {
		scam = 0.99
	}
	return models.ClassifierOutput{Safe: 1 - scam, Scam: scam}, nil
}
