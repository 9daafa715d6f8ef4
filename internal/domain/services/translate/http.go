package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"prism-lab/internal/config"
	"prism-lab/pkg/logger"
)

// HTTPService talks to a LibreTranslate-compatible endpoint.
type HTTPService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	targetLang string
	logger     *logger.Logger
}

// NewHTTPService creates a translator backed by an external translation API
func NewHTTPService(cfg config.TranslatorConfig, log *logger.Logger) *HTTPService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	targetLang := cfg.TargetLang
	if targetLang == "" {
		targetLang = "en"
	}

	return &HTTPService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		targetLang: targetLang,
		logger:     log.WithComponent("translator"),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate converts text from sourceLang into the configured target
// language. sourceLang "unknown" is sent as "auto".
func (s *HTTPService) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("translator not configured")
	}
	if sourceLang == "" || sourceLang == "unknown" {
		sourceLang = "auto"
	}

	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: sourceLang,
		Target: s.targetLang,
		Format: "text",
		APIKey: s.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned status %d", resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode translate response: %w", err)
	}
	if result.TranslatedText == "" {
		return "", fmt.Errorf("translation service returned empty text")
	}
	return result.TranslatedText, nil
}
