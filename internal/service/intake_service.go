package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/nlp"
	"github.com/civicpulse/issues-api/internal/notify"
	"github.com/civicpulse/issues-api/internal/triage"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

type issueWriter interface {
	Create(ctx context.Context, issue *models.Issue) error
}

// IntakeService runs the end-to-end pipeline from raw citizen input to a
// persisted, notified issue record.
type IntakeService struct {
	store       issueWriter
	transcriber nlp.Transcriber
	analyzer    nlp.Analyzer
	notifier    notify.Notifier
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewIntakeService constructs the service.
func NewIntakeService(store issueWriter, transcriber nlp.Transcriber, analyzer nlp.Analyzer, notifier notify.Notifier, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *IntakeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &IntakeService{
		store:       store,
		transcriber: transcriber,
		analyzer:    analyzer,
		notifier:    notifier,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// IntakeRequest is the reporter's submission. Audio is base64-encoded;
// a pre-transcribed text takes precedence over it.
type IntakeRequest struct {
	UserID     string `json:"userId" validate:"required"`
	Audio      string `json:"audio"`
	Transcript string `json:"transcript"`
}

// Intake processes one submission. Each step depends on the previous
// one, so the external calls run in strict sequence. A persistence
// failure fails the request; a notification failure does not.
func (s *IntakeService) Intake(ctx context.Context, req IntakeRequest) (*models.Receipt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "userId is required")
	}
	if req.Transcript == "" && req.Audio == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "either transcript or audio is required")
	}

	transcript := req.Transcript
	if transcript == "" {
		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "audio must be base64 encoded")
		}
		transcript, err = s.transcriber.Transcribe(ctx, audio)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrTranscription.Code, appErrors.ErrTranscription.Status, "transcription failed")
		}
	}

	sentiment, err := s.analyzer.DetectSentiment(ctx, transcript)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAnalysis.Code, appErrors.ErrAnalysis.Status, "sentiment analysis failed")
	}
	entities, err := s.analyzer.DetectEntities(ctx, transcript)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAnalysis.Code, appErrors.ErrAnalysis.Status, "entity detection failed")
	}

	location := triage.ExtractLocation(entities)
	issueType := triage.ClassifyIssue(transcript)
	urgency := triage.ScoreUrgency(sentiment.Sentiment, transcript, sentiment.Scores)
	estimatedDays := triage.EstimateResolution(issueType, urgency)

	now := s.now().UTC()
	issue := &models.Issue{
		IssueID:         "ISSUE-" + uuid.NewString(),
		UserID:          req.UserID,
		Transcript:      transcript,
		IssueType:       issueType,
		Location:        location,
		Sentiment:       sentiment.Sentiment,
		SentimentScores: sentiment.Scores,
		Urgency:         urgency,
		Status:          models.StatusPending,
		Timestamp:       now.Format(time.RFC3339),
		Reports:         1,
		Entities:        models.EntityList(entities),
	}

	if err := s.store.Create(ctx, issue); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store issue")
	}
	s.logger.Info("issue stored",
		zap.String("issue_id", issue.IssueID),
		zap.String("issue_type", issueType),
		zap.String("urgency", urgency))

	s.cache.Invalidate(ctx, analyticsSummaryCacheKey)

	// Best effort only. A failed notification must never fail an intake
	// that already persisted the record.
	subject := fmt.Sprintf("New %s Report", issueType)
	if err := s.notifier.Publish(ctx, subject, notificationBody(issue, now)); err != nil {
		s.logger.Warn("notification failed", zap.String("issue_id", issue.IssueID), zap.Error(err))
	}

	return &models.Receipt{
		IssueID:             issue.IssueID,
		IssueType:           issueType,
		Location:            location,
		Urgency:             urgency,
		Status:              issue.Status,
		EstimatedResolution: fmt.Sprintf("%d days", estimatedDays),
	}, nil
}

func notificationBody(issue *models.Issue, now time.Time) string {
	return fmt.Sprintf(`New civic issue reported via CivicPulse:

Issue ID: %s
Type: %s
Location: %s
Urgency: %s
Description: %s

Status: Pending Review
Reported: %s`,
		issue.IssueID, issue.IssueType, issue.Location, issue.Urgency, issue.Transcript,
		now.Format("2006-01-02 15:04:05"))
}
