package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism-lab/internal/config"
	"prism-lab/pkg/logger"
)

func TestNoopPassesThrough(t *testing.T) {
	out, err := Noop{}.Translate(context.Background(), "तुरंत सत्यापित करें", "hi")
	require.NoError(t, err)
	assert.Equal(t, "तुरंत सत्यापित करें", out)
}

func TestHTTPTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hi", req["source"])
		assert.Equal(t, "en", req["target"])

		w.Write([]byte(`{"translatedText":"verify your bank account immediately"}`))
	}))
	defer server.Close()

	svc := NewHTTPService(config.TranslatorConfig{BaseURL: server.URL}, logger.NewDefault())

	out, err := svc.Translate(context.Background(), "तुरंत बैंक खाता सत्यापित करें", "hi")
	require.NoError(t, err)
	assert.Equal(t, "verify your bank account immediately", out)
}

func TestHTTPTranslateUnknownSourceBecomesAuto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "auto", req["source"])
		w.Write([]byte(`{"translatedText":"hello"}`))
	}))
	defer server.Close()

	svc := NewHTTPService(config.TranslatorConfig{BaseURL: server.URL}, logger.NewDefault())

	_, err := svc.Translate(context.Background(), "hola", "unknown")
	require.NoError(t, err)
}

func TestHTTPTranslateFailures(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := NewHTTPService(config.TranslatorConfig{}, logger.NewDefault())
		_, err := svc.Translate(context.Background(), "text", "hi")
		assert.Error(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer server.Close()

		svc := NewHTTPService(config.TranslatorConfig{BaseURL: server.URL}, logger.NewDefault())
		_, err := svc.Translate(context.Background(), "text", "hi")
		assert.Error(t, err)
	})

	t.Run("empty translation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"translatedText":""}`))
		}))
		defer server.Close()

		svc := NewHTTPService(config.TranslatorConfig{BaseURL: server.URL}, logger.NewDefault())
		_, err := svc.Translate(context.Background(), "text", "hi")
		assert.Error(t, err)
	})
}
