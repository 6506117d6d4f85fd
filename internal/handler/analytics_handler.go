package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/service"
	"github.com/civicpulse/issues-api/pkg/response"
)

type analyticsService interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
}

// AnalyticsHandler exposes dashboard aggregates.
type AnalyticsHandler struct {
	service analyticsService
	metrics *service.MetricsService
}

// NewAnalyticsHandler constructs an analytics handler.
func NewAnalyticsHandler(svc analyticsService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc, metrics: metrics}
}

// Summary godoc
// @Summary Issue analytics summary
// @Description Aggregated counts and trends over stored issues
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"summary": summary})
}

// System godoc
// @Summary Service instrumentation snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.OK(c, gin.H{"metrics": h.metrics.Snapshot()})
}
