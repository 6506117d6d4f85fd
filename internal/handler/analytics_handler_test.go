package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/service"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

type stubAnalyticsService struct {
	summary *models.AnalyticsSummary
	err     error
}

func (s *stubAnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	return s.summary, s.err
}

func buildAnalyticsRouter(svc *stubAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalyticsHandler(svc, service.NewMetricsService())
	router := gin.New()
	router.GET("/analytics/summary", h.Summary)
	router.GET("/analytics/system", h.System)
	return router
}

func TestAnalyticsHandlerSummary(t *testing.T) {
	svc := &stubAnalyticsService{summary: &models.AnalyticsSummary{
		TotalReports:  9,
		ActiveIssues:  6,
		StatusCounts:  map[string]int{"Pending": 4},
		UrgencyCounts: map[string]int{models.UrgencyHigh: 5},
		GeneratedAt:   time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC),
	}}
	router := buildAnalyticsRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/analytics/summary", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(9), summary["totalReports"])
	assert.Equal(t, float64(6), summary["activeIssues"])
}

func TestAnalyticsHandlerSummaryError(t *testing.T) {
	svc := &stubAnalyticsService{err: appErrors.Wrap(errors.New("db down"), appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to aggregate statuses")}
	router := buildAnalyticsRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/analytics/summary", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestAnalyticsHandlerSystem(t *testing.T) {
	router := buildAnalyticsRouter(&stubAnalyticsService{})

	req, _ := http.NewRequest(http.MethodGet, "/analytics/system", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "metrics")
}
