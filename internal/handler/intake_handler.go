package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/service"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
	"github.com/civicpulse/issues-api/pkg/response"
)

type intakeService interface {
	Intake(ctx context.Context, req service.IntakeRequest) (*models.Receipt, error)
}

// IntakeHandler exposes the issue intake endpoint.
type IntakeHandler struct {
	service intakeService
}

// NewIntakeHandler constructs an intake handler.
func NewIntakeHandler(svc intakeService) *IntakeHandler {
	return &IntakeHandler{service: svc}
}

// Intake godoc
// @Summary Report a civic issue
// @Description Accepts a voice recording or a pre-transcribed complaint and runs the full intake pipeline
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body service.IntakeRequest true "Intake payload"
// @Success 200 {object} map[string]interface{}
// @Router /intake [post]
func (h *IntakeHandler) Intake(c *gin.Context) {
	var req service.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	receipt, err := h.service.Intake(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"message":             "Issue reported successfully",
		"issueId":             receipt.IssueID,
		"issueType":           receipt.IssueType,
		"location":            receipt.Location,
		"urgency":             receipt.Urgency,
		"status":              receipt.Status,
		"estimatedResolution": receipt.EstimatedResolution,
	})
}
