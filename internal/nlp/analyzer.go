// Package nlp holds the clients for the external speech-to-text and
// text-analysis collaborators. Retry policy, if any, belongs here and
// not in the intake pipeline.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/pkg/config"
)

// SentimentResult is the analyzer's label plus its raw confidence
// distribution.
type SentimentResult struct {
	Sentiment string          `json:"sentiment"`
	Scores    models.ScoreMap `json:"scores"`
}

// Analyzer detects sentiment and entities in free text.
type Analyzer interface {
	DetectSentiment(ctx context.Context, text string) (*SentimentResult, error)
	DetectEntities(ctx context.Context, text string) ([]models.Entity, error)
}

// AnalyzerClient talks to the sentiment/entity analysis service over
// HTTP.
type AnalyzerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAnalyzerClient constructs the analyzer client.
func NewAnalyzerClient(cfg config.AnalyzerConfig, logger *zap.Logger) *AnalyzerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzerClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// DetectSentiment returns the dominant sentiment label and score
// distribution for the text.
func (c *AnalyzerClient) DetectSentiment(ctx context.Context, text string) (*SentimentResult, error) {
	var result SentimentResult
	if err := c.post(ctx, "/v1/sentiment", text, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DetectEntities returns the entities mentioned in the text.
func (c *AnalyzerClient) DetectEntities(ctx context.Context, text string) ([]models.Entity, error) {
	var result struct {
		Entities []models.Entity `json:"entities"`
	}
	if err := c.post(ctx, "/v1/entities", text, &result); err != nil {
		return nil, err
	}
	return result.Entities, nil
}

func (c *AnalyzerClient) post(ctx context.Context, path, text string, dest interface{}) error {
	payload, err := json.Marshal(map[string]string{"text": text, "language": "en"})
	if err != nil {
		return fmt.Errorf("encode analyzer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build analyzer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call analyzer %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("analyzer returned non-200",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("analyzer %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode analyzer response: %w", err)
	}
	return nil
}
