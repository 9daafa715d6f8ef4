package urlscan

import (
	"context"

	"prism-lab/internal/domain/models"
)

// ThreatIntelProvider answers reputation queries for a domain. The pattern
// score is passed along so providers without external data can still grade
// the domain.
type ThreatIntelProvider interface {
	Lookup(ctx context.Context, domain string, patternScore int) models.ThreatIntel
}

// SimulatedIntel derives a reputation verdict from the pattern score alone.
// It stands in for a commercial feed; swap it out by implementing
// ThreatIntelProvider against a real source.
type SimulatedIntel struct{}

// NewSimulatedIntel creates a new SimulatedIntel provider
func NewSimulatedIntel() *SimulatedIntel {
	return &SimulatedIntel{}
}

func (s *SimulatedIntel) Lookup(_ context.Context, _ string, patternScore int) models.ThreatIntel {
	switch {
	case patternScore > 60:
		return models.ThreatIntel{
			Status:     models.CheckStatusOK,
			IsSafe:     false,
			ThreatType: "malicious",
			Confidence: models.ThreatIntelConfidenceMedium,
			Source:     "heuristic",
		}
	case patternScore > 30:
		return models.ThreatIntel{
			Status:     models.CheckStatusOK,
			IsSafe:     false,
			ThreatType: "suspicious",
			Confidence: models.ThreatIntelConfidenceLow,
			Source:     "heuristic",
		}
	default:
		return models.ThreatIntel{
			Status: models.CheckStatusOK,
			IsSafe: true,
			Source: "heuristic",
		}
	}
}
