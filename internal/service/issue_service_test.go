package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

type mockIssueRepo struct {
	issue      *models.Issue
	issues     []models.Issue
	err        error
	gotFilter  models.IssueFilter
	gotUpdates map[string]string
	gotStamp   string
	deletedID  string
}

func (m *mockIssueRepo) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	return m.issue, m.err
}

func (m *mockIssueRepo) List(ctx context.Context, filter models.IssueFilter) ([]models.Issue, error) {
	m.gotFilter = filter
	return m.issues, m.err
}

func (m *mockIssueRepo) Update(ctx context.Context, id string, updates map[string]string, updatedAt string) (*models.Issue, error) {
	m.gotUpdates = updates
	m.gotStamp = updatedAt
	return m.issue, m.err
}

func (m *mockIssueRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.err
}

func newIssueFixture(repo *mockIssueRepo) *IssueService {
	svc := NewIssueService(repo, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestIssueGetNotFound(t *testing.T) {
	repo := &mockIssueRepo{err: sql.ErrNoRows}
	svc := newIssueFixture(repo)

	_, err := svc.Get(context.Background(), "ISSUE-missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Issue not found", appErr.Message)
}

func TestIssueGetEmptyID(t *testing.T) {
	svc := newIssueFixture(&mockIssueRepo{})

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestIssueListDefaultLimit(t *testing.T) {
	repo := &mockIssueRepo{issues: []models.Issue{{IssueID: "ISSUE-1"}}}
	svc := newIssueFixture(repo)

	issues, err := svc.List(context.Background(), models.IssueFilter{Status: "Pending"})
	require.NoError(t, err)
	assert.Len(t, issues, 1)
	assert.Equal(t, 100, repo.gotFilter.Limit)
	assert.Equal(t, "Pending", repo.gotFilter.Status)
}

func TestIssueListKeepsExplicitLimit(t *testing.T) {
	repo := &mockIssueRepo{}
	svc := newIssueFixture(repo)

	_, err := svc.List(context.Background(), models.IssueFilter{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, repo.gotFilter.Limit)
}

func TestIssueUpdateFiltersFields(t *testing.T) {
	repo := &mockIssueRepo{issue: &models.Issue{IssueID: "ISSUE-1", Status: "Resolved"}}
	svc := newIssueFixture(repo)

	issue, err := svc.Update(context.Background(), "ISSUE-1", map[string]string{
		"Status":     "Resolved",
		"Notes":      "fixed",
		"Urgency":    "low",
		"Transcript": "rewritten",
	})
	require.NoError(t, err)
	assert.Equal(t, "Resolved", issue.Status)

	assert.Equal(t, map[string]string{"Status": "Resolved", "Notes": "fixed"}, repo.gotUpdates,
		"only allow-listed fields reach the repository")
	assert.Equal(t, "2024-06-02T09:30:00Z", repo.gotStamp)
}

func TestIssueUpdateNotFound(t *testing.T) {
	repo := &mockIssueRepo{err: sql.ErrNoRows}
	svc := newIssueFixture(repo)

	_, err := svc.Update(context.Background(), "ISSUE-missing", map[string]string{"Status": "Resolved"})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestIssueDeleteIdempotent(t *testing.T) {
	repo := &mockIssueRepo{}
	svc := newIssueFixture(repo)

	require.NoError(t, svc.Delete(context.Background(), "ISSUE-gone"))
	assert.Equal(t, "ISSUE-gone", repo.deletedID)
}

func TestIssueDeleteRepositoryError(t *testing.T) {
	repo := &mockIssueRepo{err: errors.New("db down")}
	svc := newIssueFixture(repo)

	err := svc.Delete(context.Background(), "ISSUE-1")
	require.Error(t, err)
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}
