package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"prism-lab/internal/domain/models"
	"prism-lab/internal/infrastructure/cache"
	"prism-lab/internal/infrastructure/database/repository"
	"prism-lab/internal/urlscan"
	"prism-lab/pkg/logger"
)

// URLHandler handles URL scanning endpoints
type URLHandler struct {
	scanner *urlscan.Scanner
	cache   *cache.RedisCache
	reports *repository.ReportRepository
	logger  *logger.Logger
}

// NewURLHandler creates a new URL handler
func NewURLHandler(scanner *urlscan.Scanner, c *cache.RedisCache, reports *repository.ReportRepository, log *logger.Logger) *URLHandler {
	return &URLHandler{
		scanner: scanner,
		cache:   c,
		reports: reports,
		logger:  log.WithComponent("url-handler"),
	}
}

// ScanRequest is the request body for a URL scan
type ScanRequest struct {
	URL string `json:"url"`
}

// ScanBatchRequest is the request body for a batch URL scan
type ScanBatchRequest struct {
	URLs []string `json:"urls"`
}

// ScanBatchResponse is the response body for a batch URL scan
type ScanBatchResponse struct {
	Results     []models.URLVerdict `json:"results"`
	TotalCount  int                 `json:"total_count"`
	UnsafeCount int                 `json:"unsafe_count"`
}

// Scan handles POST /api/v1/url/scan
func (h *URLHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	verdict := h.scanner.Scan(r.Context(), req.URL)

	h.logger.Info().
		Str("url", req.URL).
		Int("risk_score", verdict.RiskScore).
		Str("risk_level", string(verdict.RiskLevel)).
		Bool("is_safe", verdict.IsSafe).
		Msg("url scanned")

	h.recordVerdict(r.Context(), &verdict)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(verdict)
}

// ScanBatch handles POST /api/v1/url/scan/batch
func (h *URLHandler) ScanBatch(w http.ResponseWriter, r *http.Request) {
	var req ScanBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.URLs) == 0 {
		http.Error(w, "At least one URL is required", http.StatusBadRequest)
		return
	}
	if len(req.URLs) > maxBatchSize {
		http.Error(w, "Maximum 100 URLs per batch", http.StatusBadRequest)
		return
	}

	results := h.scanner.ScanBatch(r.Context(), req.URLs)

	response := ScanBatchResponse{
		Results:    results,
		TotalCount: len(results),
	}
	for i := range results {
		if !results[i].IsSafe {
			response.UnsafeCount++
		}
		h.recordVerdict(r.Context(), &results[i])
	}

	h.logger.Info().
		Int("total", response.TotalCount).
		Int("unsafe", response.UnsafeCount).
		Msg("url batch scanned")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// recordVerdict bumps counters and persists the report, best-effort.
// Cache-hit verdicts are not recounted.
func (h *URLHandler) recordVerdict(ctx context.Context, verdict *models.URLVerdict) {
	if verdict.CacheHit {
		return
	}

	if h.cache != nil {
		h.cache.IncrStat(ctx, cache.KeyStatsURLScans)
		if !verdict.IsSafe {
			h.cache.IncrStat(ctx, cache.KeyStatsUnsafeURLs)
		}
	}

	if h.reports != nil {
		if err := h.reports.SaveURLReport(ctx, verdict); err != nil {
			h.logger.Warn().Err(err).Msg("failed to persist url report")
		}
	}
}
