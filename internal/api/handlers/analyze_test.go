package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism-lab/internal/domain/models"
	"prism-lab/internal/domain/services"
	"prism-lab/internal/domain/services/classifier"
	"prism-lab/pkg/logger"
)

func newTestMessageHandler(t *testing.T, cls classifier.Classifier) *MessageHandler {
	t.Helper()
	log := logger.NewDefault()
	table := services.DefaultCategoryTable()
	analyzer := services.NewMessageAnalyzer(cls, table, log)
	return NewMessageHandler(analyzer, table, nil, nil, log)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestMessageHandler(t, &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.1, Scam: 0.9}})

	rec := postJSON(t, h.Analyze, AnalyzeRequest{
		Text: "URGENT: verify your bank account now",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var verdict models.RiskVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.Equal(t, models.RiskLevelScam, verdict.Prediction)
	assert.NotEmpty(t, verdict.Explanation)
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	h := newTestMessageHandler(t, &classifier.Mock{})

	t.Run("empty text", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, AnalyzeRequest{Text: ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, AnalyzeRequest{Text: "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.Analyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyzeEndpointClassifierDown(t *testing.T) {
	h := newTestMessageHandler(t, &classifier.Mock{Err: classifier.ErrUnavailable})

	rec := postJSON(t, h.Analyze, AnalyzeRequest{Text: "hello there"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	h := newTestMessageHandler(t, &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.1, Scam: 0.9}})

	rec := postJSON(t, h.AnalyzeBatch, AnalyzeBatchRequest{
		Messages: []AnalyzeRequest{
			{Text: "urgent lottery winner, click now"},
			{Text: ""},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeBatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Results, 2)
	assert.NotNil(t, resp.Results[0].Verdict)
	assert.Empty(t, resp.Results[0].Error)
	assert.Nil(t, resp.Results[1].Verdict)
	assert.NotEmpty(t, resp.Results[1].Error)
}

func TestAnalyzeBatchEndpointLimits(t *testing.T) {
	h := newTestMessageHandler(t, &classifier.Mock{})

	t.Run("empty batch", func(t *testing.T) {
		rec := postJSON(t, h.AnalyzeBatch, AnalyzeBatchRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversized batch", func(t *testing.T) {
		msgs := make([]AnalyzeRequest, maxBatchSize+1)
		for i := range msgs {
			msgs[i] = AnalyzeRequest{Text: "hello"}
		}
		rec := postJSON(t, h.AnalyzeBatch, AnalyzeBatchRequest{Messages: msgs})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCategoriesEndpoint(t *testing.T) {
	h := newTestMessageHandler(t, &classifier.Mock{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Categories(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories map[string][]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Categories, "urgency")
	assert.Contains(t, resp.Categories["urgency"], "urgent")
}
