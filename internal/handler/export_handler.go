package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/service"
	"github.com/civicpulse/issues-api/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, format string, filter models.IssueFilter) (*service.ExportResult, error)
}

// ExportHandler exposes issue export downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Export issues
// @Description Renders the filtered issue list as CSV or PDF
// @Tags Issues
// @Produce octet-stream
// @Param format query string false "csv or pdf, default csv"
// @Param status query string false "Exact status match"
// @Param urgency query string false "Exact urgency match"
// @Param issueType query string false "Issue type substring match"
// @Success 200 {file} binary
// @Router /issues/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	filter := models.IssueFilter{
		Status:    c.Query("status"),
		Urgency:   c.Query("urgency"),
		IssueType: c.Query("issueType"),
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	format := c.DefaultQuery("format", service.ExportFormatCSV)
	result, err := h.service.Render(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(200, result.ContentType, result.Payload)
}
