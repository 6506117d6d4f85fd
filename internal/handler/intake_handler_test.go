package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/service"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

type stubIntakeService struct {
	receipt *models.Receipt
	err     error
	gotReq  service.IntakeRequest
}

func (s *stubIntakeService) Intake(ctx context.Context, req service.IntakeRequest) (*models.Receipt, error) {
	s.gotReq = req
	return s.receipt, s.err
}

func buildIntakeRouter(svc *stubIntakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/intake", NewIntakeHandler(svc).Intake)
	return router
}

func TestIntakeHandlerSuccess(t *testing.T) {
	svc := &stubIntakeService{receipt: &models.Receipt{
		IssueID:             "ISSUE-1",
		IssueType:           "Infrastructure - Pothole",
		Location:            "Main Street",
		Urgency:             models.UrgencyHigh,
		Status:              models.StatusPending,
		EstimatedResolution: "3 days",
	}}
	router := buildIntakeRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/intake", strings.NewReader(`{"userId":"user-1","transcript":"huge pothole on Main Street"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Issue reported successfully", body["message"])
	assert.Equal(t, "ISSUE-1", body["issueId"])
	assert.Equal(t, "3 days", body["estimatedResolution"])
	assert.Equal(t, "user-1", svc.gotReq.UserID)
	assert.Equal(t, "huge pothole on Main Street", svc.gotReq.Transcript)
}

func TestIntakeHandlerBadPayload(t *testing.T) {
	router := buildIntakeRouter(&stubIntakeService{})

	req, _ := http.NewRequest(http.MethodPost, "/intake", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestIntakeHandlerValidationError(t *testing.T) {
	svc := &stubIntakeService{err: appErrors.Clone(appErrors.ErrValidation, "userId is required")}
	router := buildIntakeRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/intake", strings.NewReader(`{"transcript":"pothole"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := decodeBody(t, resp)
	assert.Equal(t, "userId is required", body["error"])
}

func TestIntakeHandlerUpstreamFailure(t *testing.T) {
	svc := &stubIntakeService{err: appErrors.Clone(appErrors.ErrTranscription, "transcription failed")}
	router := buildIntakeRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/intake", strings.NewReader(`{"userId":"user-1","audio":"YWJj"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadGateway, resp.Code)
}
