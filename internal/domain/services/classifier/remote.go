package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"prism-lab/internal/config"
	"prism-lab/internal/domain/models"
	"prism-lab/pkg/logger"
)

// RemoteService calls an external model-serving endpoint over HTTP.
type RemoteService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxLength  int
	logger     *logger.Logger
}

// NewRemoteService creates a classifier backed by a remote model server
func NewRemoteService(cfg config.ClassifierConfig, log *logger.Logger) *RemoteService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxLength := cfg.MaxLength
	if maxLength == 0 {
		maxLength = DefaultMaxLength
	}

	return &RemoteService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxLength:  maxLength,
		logger:     log.WithComponent("classifier"),
	}
}

type predictRequest struct {
	Text      string `json:"text"`
	MaxLength int    `json:"max_length"`
}

type predictResponse struct {
	Safe float64 `json:"safe"`
	Scam float64 `json:"scam"`
}

// Predict sends the (length-bounded) text to the model server. Any
// transport or protocol failure means no model signal is available, which
// is fatal to the analysis: ErrUnavailable is returned.
func (s *RemoteService) Predict(ctx context.Context, text string) (models.ClassifierOutput, error) {
	if s.baseURL == "" {
		return models.ClassifierOutput{}, ErrUnavailable
	}

	body, err := json.Marshal(predictRequest{
		Text:      Truncate(text, s.maxLength),
		MaxLength: s.maxLength,
	})
	if err != nil {
		return models.ClassifierOutput{}, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return models.ClassifierOutput{}, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("model server unreachable")
		return models.ClassifierOutput{}, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Warn().Int("status", resp.StatusCode).Str("body", string(data)).Msg("model server error")
		return models.ClassifierOutput{}, ErrUnavailable
	}

	var pred predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return models.ClassifierOutput{}, ErrUnavailable
	}

	out := models.ClassifierOutput{Safe: pred.Safe, Scam: pred.Scam}
	if !validProbabilities(out) {
		s.logger.Warn().Float64("safe", out.Safe).Float64("scam", out.Scam).Msg("model returned invalid probabilities")
		return models.ClassifierOutput{}, ErrUnavailable
	}
	return out, nil
}

// validProbabilities checks both values are in [0,1] and sum to 1.
func validProbabilities(out models.ClassifierOutput) bool {
	if out.Safe < 0 || out.Safe > 1 || out.Scam < 0 || out.Scam > 1 {
		return false
	}
	return math.Abs(out.Safe+out.Scam-1) < 1e-6
}
