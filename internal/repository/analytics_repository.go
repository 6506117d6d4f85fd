package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/civicpulse/issues-api/internal/models"
)

// AnalyticsRepository exposes read-optimised aggregate queries over the
// issues table.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository instantiates the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// LabelCount is one aggregation bucket.
type LabelCount struct {
	Label string `db:"label"`
	Count int    `db:"count"`
}

// TypeUrgencyCount groups issues by type and urgency.
type TypeUrgencyCount struct {
	IssueType string `db:"issue_type"`
	Urgency   string `db:"urgency"`
	Count     int    `db:"count"`
}

// CountByStatus returns the number of issues per status.
func (r *AnalyticsRepository) CountByStatus(ctx context.Context) ([]LabelCount, error) {
	const query = `SELECT status AS label, COUNT(*) AS count FROM issues GROUP BY status`
	var counts []LabelCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count issues by status: %w", err)
	}
	return counts, nil
}

// CountByUrgency returns the number of issues per urgency level.
func (r *AnalyticsRepository) CountByUrgency(ctx context.Context) ([]LabelCount, error) {
	const query = `SELECT urgency AS label, COUNT(*) AS count FROM issues GROUP BY urgency`
	var counts []LabelCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count issues by urgency: %w", err)
	}
	return counts, nil
}

// CountByTypeAndUrgency groups issues by issue type and urgency so the
// service can weight resolution estimates.
func (r *AnalyticsRepository) CountByTypeAndUrgency(ctx context.Context) ([]TypeUrgencyCount, error) {
	const query = `SELECT issue_type, urgency, COUNT(*) AS count FROM issues GROUP BY issue_type, urgency`
	var counts []TypeUrgencyCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count issues by type and urgency: %w", err)
	}
	return counts, nil
}

// ReportsOverTime buckets issue creation per day for the trailing
// window. The timestamp column is an ISO-8601 string, so the day is its
// first ten characters.
func (r *AnalyticsRepository) ReportsOverTime(ctx context.Context, days int) ([]models.DailyCount, error) {
	if days <= 0 {
		days = 7
	}
	const query = `SELECT LEFT(timestamp, 10) AS day, COUNT(*) AS count
FROM issues
WHERE LEFT(timestamp, 10) >= TO_CHAR(NOW() AT TIME ZONE 'UTC' - make_interval(days => $1), 'YYYY-MM-DD')
GROUP BY day ORDER BY day`
	var counts []models.DailyCount
	if err := r.db.SelectContext(ctx, &counts, query, days); err != nil {
		return nil, fmt.Errorf("reports over time: %w", err)
	}
	return counts, nil
}
