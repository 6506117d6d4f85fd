package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/pkg/config"
)

func TestAnalyzerDetectSentiment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/sentiment", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "huge pothole", payload["text"])
		assert.Equal(t, "en", payload["language"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"sentiment": "NEGATIVE",
			"scores":    map[string]float64{"Negative": 0.9, "Positive": 0.05},
		})
	}))
	defer server.Close()

	client := NewAnalyzerClient(config.AnalyzerConfig{BaseURL: server.URL, APIKey: "test-key", Timeout: time.Second}, zap.NewNop())

	result, err := client.DetectSentiment(context.Background(), "huge pothole")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, result.Sentiment)
	assert.InDelta(t, 0.9, result.Scores["Negative"], 0.001)
}

func TestAnalyzerDetectEntities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/entities", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"entities": []models.Entity{{Type: "LOCATION", Text: "Main Street", Score: 0.95}},
		})
	}))
	defer server.Close()

	client := NewAnalyzerClient(config.AnalyzerConfig{BaseURL: server.URL, Timeout: time.Second}, zap.NewNop())

	entities, err := client.DetectEntities(context.Background(), "pothole on Main Street")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Main Street", entities[0].Text)
}

func TestAnalyzerNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewAnalyzerClient(config.AnalyzerConfig{BaseURL: server.URL, Timeout: time.Second}, zap.NewNop())

	_, err := client.DetectSentiment(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
