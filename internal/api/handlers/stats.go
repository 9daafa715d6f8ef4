package handlers

import (
	"encoding/json"
	"net/http"

	"prism-lab/internal/infrastructure/cache"
	"prism-lab/internal/infrastructure/database/repository"
	"prism-lab/pkg/logger"
)

// StatsHandler handles the public stats endpoint
type StatsHandler struct {
	cache   *cache.RedisCache
	reports *repository.ReportRepository
	logger  *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(c *cache.RedisCache, reports *repository.ReportRepository, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		cache:   c,
		reports: reports,
		logger:  log.WithComponent("stats"),
	}
}

// StatsResponse aggregates the live counters with the persisted report
// breakdown.
type StatsResponse struct {
	MessagesAnalyzed   int64            `json:"messages_analyzed"`
	ScamsDetected      int64            `json:"scams_detected"`
	SuspiciousDetected int64            `json:"suspicious_detected"`
	URLsScanned        int64            `json:"urls_scanned"`
	UnsafeURLs         int64            `json:"unsafe_urls"`
	ReportsByVerdict   map[string]int64 `json:"reports_by_verdict,omitempty"`
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var response StatsResponse

	if h.cache != nil {
		stats, err := h.cache.GetStats(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to read stats counters")
		} else {
			response.MessagesAnalyzed = stats[cache.KeyStatsMessages]
			response.ScamsDetected = stats[cache.KeyStatsScams]
			response.SuspiciousDetected = stats[cache.KeyStatsSuspicious]
			response.URLsScanned = stats[cache.KeyStatsURLScans]
			response.UnsafeURLs = stats[cache.KeyStatsUnsafeURLs]
		}
	}

	if h.reports != nil {
		counts, err := h.reports.CountByPrediction(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to count stored reports")
		} else {
			response.ReportsByVerdict = counts
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
