package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"prism-lab/internal/domain/models"
	"prism-lab/internal/domain/services"
	"prism-lab/internal/domain/services/classifier"
	"prism-lab/internal/infrastructure/cache"
	"prism-lab/internal/infrastructure/database/repository"
	"prism-lab/pkg/logger"
)

// Verdict cache TTLs: risky verdicts stick around longer so repeated scam
// blasts keep hitting the cache.
const (
	verdictSafeTTL   = 5 * time.Minute
	verdictUnsafeTTL = time.Hour
)

const maxBatchSize = 100

// MessageHandler handles message analysis endpoints
type MessageHandler struct {
	analyzer *services.MessageAnalyzer
	table    *services.CategoryTable
	cache    *cache.RedisCache
	reports  *repository.ReportRepository
	logger   *logger.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(analyzer *services.MessageAnalyzer, table *services.CategoryTable, c *cache.RedisCache, reports *repository.ReportRepository, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		analyzer: analyzer,
		table:    table,
		cache:    c,
		reports:  reports,
		logger:   log.WithComponent("message-handler"),
	}
}

// AnalyzeRequest is the request body for message analysis
type AnalyzeRequest struct {
	Text   string               `json:"text"`
	Source models.MessageSource `json:"source,omitempty"`
}

// AnalyzeBatchRequest is the request body for batch message analysis
type AnalyzeBatchRequest struct {
	Messages []AnalyzeRequest `json:"messages"`
}

// BatchItem wraps one batch result; failed items carry an error instead
// of a verdict.
type BatchItem struct {
	Verdict *models.RiskVerdict `json:"verdict,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// AnalyzeBatchResponse is the response body for batch message analysis
type AnalyzeBatchResponse struct {
	Results    []BatchItem `json:"results"`
	TotalCount int         `json:"total_count"`
	ScamCount  int         `json:"scam_count"`
}

// Analyze handles POST /api/v1/message/analyze
func (h *MessageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "Message text is required", http.StatusBadRequest)
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.GetMessageVerdict(r.Context(), req.Text); err != nil {
			h.logger.Warn().Err(err).Msg("verdict cache read failed")
		} else if cached != nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(cached)
			return
		}
	}

	verdict, err := h.analyzer.Analyze(r.Context(), models.Message{
		ID:     uuid.New(),
		Text:   req.Text,
		Source: req.Source,
	})
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	h.logger.Info().
		Str("prediction", string(verdict.Prediction)).
		Int("risk_score", verdict.RiskScore).
		Str("language", verdict.LanguageCode).
		Msg("message analyzed")

	h.recordVerdict(r.Context(), req.Text, verdict)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(verdict)
}

// AnalyzeBatch handles POST /api/v1/message/analyze/batch
func (h *MessageHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Messages) == 0 {
		http.Error(w, "At least one message is required", http.StatusBadRequest)
		return
	}
	if len(req.Messages) > maxBatchSize {
		http.Error(w, "Maximum 100 messages per batch", http.StatusBadRequest)
		return
	}

	messages := make([]models.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = models.Message{
			ID:     uuid.New(),
			Text:   m.Text,
			Source: m.Source,
		}
	}

	verdicts, errs := h.analyzer.AnalyzeBatch(r.Context(), messages)

	response := AnalyzeBatchResponse{
		Results:    make([]BatchItem, len(verdicts)),
		TotalCount: len(verdicts),
	}
	for i, verdict := range verdicts {
		if errs[i] != nil {
			response.Results[i] = BatchItem{Error: errs[i].Error()}
			continue
		}
		response.Results[i] = BatchItem{Verdict: verdict}
		if verdict.Prediction == models.RiskLevelScam {
			response.ScamCount++
		}
		h.recordVerdict(r.Context(), messages[i].Text, verdict)
	}

	h.logger.Info().
		Int("total", response.TotalCount).
		Int("scams", response.ScamCount).
		Msg("message batch analyzed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Categories handles GET /api/v1/message/categories - exposes the keyword
// trigger table
func (h *MessageHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := make(map[string][]string)
	for _, name := range h.table.Categories() {
		categories[name] = h.table.Keywords(name)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"categories": categories,
	})
}

// writeAnalysisError maps pipeline errors to HTTP statuses: bad input is
// the caller's fault, a missing model is an upstream outage.
func (h *MessageHandler) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		http.Error(w, "Message text is required", http.StatusBadRequest)
	case errors.Is(err, classifier.ErrUnavailable):
		h.logger.Error().Err(err).Msg("classifier unavailable")
		http.Error(w, "Classification model unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Error().Err(err).Msg("failed to analyze message")
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
	}
}

// recordVerdict caches the verdict, bumps counters and persists the report.
// All three are best-effort.
func (h *MessageHandler) recordVerdict(ctx context.Context, text string, verdict *models.RiskVerdict) {
	if h.cache != nil {
		ttl := verdictUnsafeTTL
		if verdict.Prediction == models.RiskLevelSafe {
			ttl = verdictSafeTTL
		}
		if err := h.cache.SetMessageVerdict(ctx, text, verdict, ttl); err != nil {
			h.logger.Warn().Err(err).Msg("verdict cache write failed")
		}

		h.cache.IncrStat(ctx, cache.KeyStatsMessages)
		switch verdict.Prediction {
		case models.RiskLevelScam:
			h.cache.IncrStat(ctx, cache.KeyStatsScams)
		case models.RiskLevelSuspicious:
			h.cache.IncrStat(ctx, cache.KeyStatsSuspicious)
		}
	}

	if h.reports != nil {
		if err := h.reports.SaveMessageReport(ctx, verdict); err != nil {
			h.logger.Warn().Err(err).Msg("failed to persist message report")
		}
	}
}
