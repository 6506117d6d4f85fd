package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

type issueRepository interface {
	GetByID(ctx context.Context, id string) (*models.Issue, error)
	List(ctx context.Context, filter models.IssueFilter) ([]models.Issue, error)
	Update(ctx context.Context, id string, updates map[string]string, updatedAt string) (*models.Issue, error)
	Delete(ctx context.Context, id string) error
}

// IssueService handles CRUD access to stored issues.
type IssueService struct {
	repo   issueRepository
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
}

// NewIssueService constructs the service.
func NewIssueService(repo issueRepository, cache *CacheService, logger *zap.Logger) *IssueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IssueService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// Get returns a single issue. A missing record is a not-found outcome,
// not a system error.
func (s *IssueService) Get(ctx context.Context, id string) (*models.Issue, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "issue id is required")
	}
	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Issue not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get issue")
	}
	return issue, nil
}

// List returns issues matching the supplied filters, newest first. The
// default limit of 100 truncates after sorting.
func (s *IssueService) List(ctx context.Context, filter models.IssueFilter) ([]models.Issue, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	issues, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list issues")
	}
	return issues, nil
}

// Update applies the allow-listed fields from the payload and returns
// the full post-update record. Unknown field names are ignored rather
// than rejected, and UpdatedAt is stamped on every accepted update.
func (s *IssueService) Update(ctx context.Context, id string, updates map[string]string) (*models.Issue, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "issue id is required")
	}

	accepted := make(map[string]string, len(models.UpdatableFields))
	for _, field := range models.UpdatableFields {
		if value, ok := updates[field.Name]; ok {
			accepted[field.Name] = value
		}
	}

	updatedAt := s.now().UTC().Format(time.RFC3339)
	issue, err := s.repo.Update(ctx, id, accepted, updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Issue not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update issue")
	}

	s.cache.Invalidate(ctx, analyticsSummaryCacheKey)
	s.logger.Info("issue updated", zap.String("issue_id", id), zap.Int("fields", len(accepted)))
	return issue, nil
}

// Delete removes an issue. Deleting an id that does not exist succeeds;
// the operation is idempotent.
func (s *IssueService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "issue id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete issue")
	}
	s.cache.Invalidate(ctx, analyticsSummaryCacheKey)
	return nil
}
