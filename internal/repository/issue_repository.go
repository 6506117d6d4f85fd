package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/civicpulse/issues-api/internal/models"
)

const issueColumns = `id, user_id, transcript, issue_type, location, sentiment, sentiment_scores, urgency, status, timestamp, updated_at, reports, entities, notes, assigned_to, resolution_date`

// IssueRepository provides persistence for civic issues.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository creates the repository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// GetByID returns an issue by identifier. A missing row surfaces as
// sql.ErrNoRows for the service layer to translate.
func (r *IssueRepository) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	query := fmt.Sprintf("SELECT %s FROM issues WHERE id = $1", issueColumns)
	var issue models.Issue
	if err := r.db.GetContext(ctx, &issue, query, id); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Create inserts a new issue record.
func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	query := `INSERT INTO issues (id, user_id, transcript, issue_type, location, sentiment, sentiment_scores, urgency, status, timestamp, updated_at, reports, entities, notes, assigned_to, resolution_date)
VALUES (:id, :user_id, :transcript, :issue_type, :location, :sentiment, :sentiment_scores, :urgency, :status, :timestamp, :updated_at, :reports, :entities, :notes, :assigned_to, :resolution_date)`
	if _, err := r.db.NamedExecContext(ctx, query, issue); err != nil {
		return fmt.Errorf("create issue: %w", err)
	}
	return nil
}

// List returns issues matching the filter, newest first. The timestamp
// column holds fixed-width ISO-8601 strings, so the lexicographic sort
// is chronological. The limit truncates the already-sorted result.
func (r *IssueRepository) List(ctx context.Context, filter models.IssueFilter) ([]models.Issue, error) {
	where := []string{}
	args := []interface{}{}

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Urgency != "" {
		where = append(where, fmt.Sprintf("urgency = $%d", len(args)+1))
		args = append(args, filter.Urgency)
	}
	if filter.IssueType != "" {
		where = append(where, fmt.Sprintf("issue_type LIKE '%%' || $%d || '%%'", len(args)+1))
		args = append(args, filter.IssueType)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf("SELECT %s FROM issues%s ORDER BY timestamp DESC LIMIT %d", issueColumns, whereClause, limit)
	var issues []models.Issue
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

// Update applies the allow-listed fields present in updates, stamps
// updated_at and returns the full post-update record. Fields outside
// the allow-list never reach this method.
func (r *IssueRepository) Update(ctx context.Context, id string, updates map[string]string, updatedAt string) (*models.Issue, error) {
	set := []string{}
	args := []interface{}{}

	for _, field := range models.UpdatableFields {
		value, ok := updates[field.Name]
		if !ok {
			continue
		}
		set = append(set, fmt.Sprintf("%s = $%d", field.Column, len(args)+1))
		args = append(args, value)
	}

	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, updatedAt)

	query := fmt.Sprintf("UPDATE issues SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args)+1, issueColumns)
	args = append(args, id)

	var issue models.Issue
	if err := r.db.GetContext(ctx, &issue, query, args...); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Delete removes an issue. Deleting a missing id is not an error.
func (r *IssueRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM issues WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	return nil
}
