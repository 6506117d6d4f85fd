package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/issues-api/internal/models"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
	"github.com/civicpulse/issues-api/pkg/response"
)

type issueService interface {
	Get(ctx context.Context, id string) (*models.Issue, error)
	List(ctx context.Context, filter models.IssueFilter) ([]models.Issue, error)
	Update(ctx context.Context, id string, updates map[string]string) (*models.Issue, error)
	Delete(ctx context.Context, id string) error
}

// IssueHandler exposes CRUD endpoints over stored issues.
type IssueHandler struct {
	service issueService
}

// NewIssueHandler constructs an issue handler.
func NewIssueHandler(svc issueService) *IssueHandler {
	return &IssueHandler{service: svc}
}

// Get godoc
// @Summary Get a single issue
// @Tags Issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /issues/{id} [get]
func (h *IssueHandler) Get(c *gin.Context) {
	issue, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"issue": issue})
}

// List godoc
// @Summary List issues
// @Description Filters by status, urgency and issue type substring; results are newest first
// @Tags Issues
// @Produce json
// @Param status query string false "Exact status match"
// @Param urgency query string false "Exact urgency match"
// @Param issueType query string false "Issue type substring match"
// @Param limit query int false "Max results, default 100"
// @Success 200 {object} map[string]interface{}
// @Router /issues [get]
func (h *IssueHandler) List(c *gin.Context) {
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

	issues, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}
	response.OK(c, gin.H{"count": len(issues), "issues": issues})
}

// Update godoc
// @Summary Update an issue
// @Description Applies allow-listed fields (Status, Notes, AssignedTo, ResolutionDate); unknown fields are ignored
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param payload body map[string]string true "Partial field map"
// @Success 200 {object} map[string]interface{}
// @Router /issues/{id} [put]
func (h *IssueHandler) Update(c *gin.Context) {
	var updates map[string]string
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	issue, err := h.service.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Issue updated successfully", "issue": issue})
}

// Delete godoc
// @Summary Delete an issue
// @Description Unconditional and idempotent
// @Tags Issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} map[string]interface{}
// @Router /issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Issue deleted successfully"})
}
