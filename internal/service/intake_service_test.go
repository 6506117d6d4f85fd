package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/nlp"
)

type mockIssueWriter struct {
	created []*models.Issue
	err     error
}

func (m *mockIssueWriter) Create(ctx context.Context, issue *models.Issue) error {
	if m.err != nil {
		return m.err
	}
	cp := *issue
	m.created = append(m.created, &cp)
	return nil
}

type mockTranscriber struct {
	text     string
	err      error
	gotAudio []byte
	called   bool
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	m.called = true
	m.gotAudio = audio
	return m.text, m.err
}

type mockAnalyzer struct {
	sentiment    *nlp.SentimentResult
	sentimentErr error
	entities     []models.Entity
	entitiesErr  error
}

func (m *mockAnalyzer) DetectSentiment(ctx context.Context, text string) (*nlp.SentimentResult, error) {
	return m.sentiment, m.sentimentErr
}

func (m *mockAnalyzer) DetectEntities(ctx context.Context, text string) ([]models.Entity, error) {
	return m.entities, m.entitiesErr
}

type mockNotifier struct {
	err      error
	subjects []string
	bodies   []string
}

func (m *mockNotifier) Publish(ctx context.Context, subject, body string) error {
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return m.err
}

func newIntakeFixture(store *mockIssueWriter, transcriber *mockTranscriber, analyzer *mockAnalyzer, notifier *mockNotifier) *IntakeService {
	svc := NewIntakeService(store, transcriber, analyzer, notifier, nil, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestIntakeWithTranscript(t *testing.T) {
	store := &mockIssueWriter{}
	transcriber := &mockTranscriber{}
	analyzer := &mockAnalyzer{
		sentiment: &nlp.SentimentResult{
			Sentiment: models.SentimentNegative,
			Scores:    models.ScoreMap{"Negative": 0.9},
		},
		entities: []models.Entity{{Type: "LOCATION", Text: "Princess Street", Score: 0.95}},
	}
	notifier := &mockNotifier{}
	svc := newIntakeFixture(store, transcriber, analyzer, notifier)

	receipt, err := svc.Intake(context.Background(), IntakeRequest{
		UserID:     "user-1",
		Transcript: "There is a dangerous massive pothole on Princess Street",
	})
	require.NoError(t, err)

	assert.False(t, transcriber.called, "transcript supplied, transcriber must not run")
	assert.True(t, strings.HasPrefix(receipt.IssueID, "ISSUE-"))
	assert.Equal(t, "Infrastructure - Pothole", receipt.IssueType)
	assert.Equal(t, "Princess Street", receipt.Location)
	assert.Equal(t, models.UrgencyHigh, receipt.Urgency)
	assert.Equal(t, models.StatusPending, receipt.Status)
	assert.Equal(t, "3 days", receipt.EstimatedResolution)

	require.Len(t, store.created, 1)
	stored := store.created[0]
	assert.Equal(t, receipt.IssueID, stored.IssueID)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, 1, stored.Reports)
	assert.Equal(t, "2024-06-01T12:00:00Z", stored.Timestamp)
	assert.Len(t, stored.Entities, 1)

	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "New Infrastructure - Pothole Report", notifier.subjects[0])
	assert.Contains(t, notifier.bodies[0], receipt.IssueID)
	assert.Contains(t, notifier.bodies[0], "Princess Street")
}

func TestIntakeTranscribesAudio(t *testing.T) {
	store := &mockIssueWriter{}
	transcriber := &mockTranscriber{text: "snow blocking the sidewalk"}
	analyzer := &mockAnalyzer{
		sentiment: &nlp.SentimentResult{Sentiment: models.SentimentNeutral, Scores: models.ScoreMap{}},
	}
	svc := newIntakeFixture(store, transcriber, analyzer, &mockNotifier{})

	audio := []byte{0x01, 0x02, 0x03}
	receipt, err := svc.Intake(context.Background(), IntakeRequest{
		UserID: "user-2",
		Audio:  base64.StdEncoding.EncodeToString(audio),
	})
	require.NoError(t, err)

	assert.True(t, transcriber.called)
	assert.Equal(t, audio, transcriber.gotAudio)
	assert.Equal(t, "Snow Removal", receipt.IssueType)
	require.Len(t, store.created, 1)
	assert.Equal(t, "snow blocking the sidewalk", store.created[0].Transcript)
}

func TestIntakeMissingUserID(t *testing.T) {
	svc := newIntakeFixture(&mockIssueWriter{}, &mockTranscriber{}, &mockAnalyzer{}, &mockNotifier{})

	_, err := svc.Intake(context.Background(), IntakeRequest{Transcript: "pothole"})
	require.Error(t, err)
}

func TestIntakeMissingTranscriptAndAudio(t *testing.T) {
	svc := newIntakeFixture(&mockIssueWriter{}, &mockTranscriber{}, &mockAnalyzer{}, &mockNotifier{})

	_, err := svc.Intake(context.Background(), IntakeRequest{UserID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript or audio")
}

func TestIntakeTranscriptionFailure(t *testing.T) {
	transcriber := &mockTranscriber{err: errors.New("upstream down")}
	svc := newIntakeFixture(&mockIssueWriter{}, transcriber, &mockAnalyzer{}, &mockNotifier{})

	_, err := svc.Intake(context.Background(), IntakeRequest{
		UserID: "user-1",
		Audio:  base64.StdEncoding.EncodeToString([]byte("audio")),
	})
	require.Error(t, err)
}

func TestIntakeAnalysisFailure(t *testing.T) {
	analyzer := &mockAnalyzer{sentimentErr: errors.New("analyzer down")}
	svc := newIntakeFixture(&mockIssueWriter{}, &mockTranscriber{}, analyzer, &mockNotifier{})

	_, err := svc.Intake(context.Background(), IntakeRequest{UserID: "user-1", Transcript: "pothole"})
	require.Error(t, err)
}

func TestIntakeStoreFailurePropagates(t *testing.T) {
	store := &mockIssueWriter{err: errors.New("db down")}
	analyzer := &mockAnalyzer{
		sentiment: &nlp.SentimentResult{Sentiment: models.SentimentNeutral, Scores: models.ScoreMap{}},
	}
	notifier := &mockNotifier{}
	svc := newIntakeFixture(store, &mockTranscriber{}, analyzer, notifier)

	_, err := svc.Intake(context.Background(), IntakeRequest{UserID: "user-1", Transcript: "pothole"})
	require.Error(t, err)
	assert.Empty(t, notifier.subjects, "nothing to announce when persistence fails")
}

func TestIntakeNotificationFailureTolerated(t *testing.T) {
	store := &mockIssueWriter{}
	analyzer := &mockAnalyzer{
		sentiment: &nlp.SentimentResult{Sentiment: models.SentimentNeutral, Scores: models.ScoreMap{}},
	}
	notifier := &mockNotifier{err: errors.New("channel gone")}
	svc := newIntakeFixture(store, &mockTranscriber{}, analyzer, notifier)

	receipt, err := svc.Intake(context.Background(), IntakeRequest{UserID: "user-1", Transcript: "pothole"})
	require.NoError(t, err, "notification failure must not fail the intake")
	assert.NotEmpty(t, receipt.IssueID)
	assert.Len(t, store.created, 1, "record persisted despite failed notification")
}
