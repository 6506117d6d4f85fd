package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	"github.com/civicpulse/issues-api/internal/repository"
	"github.com/civicpulse/issues-api/internal/triage"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

const analyticsSummaryCacheKey = "analytics:summary"

const reportsWindowDays = 7

type analyticsRepository interface {
	CountByStatus(ctx context.Context) ([]repository.LabelCount, error)
	CountByUrgency(ctx context.Context) ([]repository.LabelCount, error)
	CountByTypeAndUrgency(ctx context.Context) ([]repository.TypeUrgencyCount, error)
	ReportsOverTime(ctx context.Context, days int) ([]models.DailyCount, error)
}

// AnalyticsService aggregates stored issues for dashboard consumption.
type AnalyticsService struct {
	repo     analyticsRepository
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(repo analyticsRepository, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

// Summary returns the dashboard aggregates, cache-aside with a TTL.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var cached models.AnalyticsSummary
	if hit, _ := s.cache.Get(ctx, analyticsSummaryCacheKey, &cached); hit {
		return &cached, nil
	}

	start := time.Now()
	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate statuses")
	}
	s.metrics.ObserveDBQuery("analytics_status_counts", time.Since(start))

	start = time.Now()
	urgencyCounts, err := s.repo.CountByUrgency(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate urgencies")
	}
	s.metrics.ObserveDBQuery("analytics_urgency_counts", time.Since(start))

	start = time.Now()
	typeUrgency, err := s.repo.CountByTypeAndUrgency(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate issue types")
	}
	s.metrics.ObserveDBQuery("analytics_type_urgency", time.Since(start))

	start = time.Now()
	overTime, err := s.repo.ReportsOverTime(ctx, reportsWindowDays)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate report history")
	}
	s.metrics.ObserveDBQuery("analytics_reports_over_time", time.Since(start))

	summary := &models.AnalyticsSummary{
		StatusCounts:    map[string]int{},
		UrgencyCounts:   map[string]int{},
		ReportsOverTime: overTime,
		GeneratedAt:     time.Now().UTC(),
	}

	for _, c := range statusCounts {
		summary.StatusCounts[c.Label] = c.Count
		summary.TotalReports += c.Count
		if c.Label != "Resolved" {
			summary.ActiveIssues += c.Count
		}
	}
	for _, c := range urgencyCounts {
		summary.UrgencyCounts[c.Label] = c.Count
	}

	// The resolution estimate is derived, not stored, so the average is
	// recomputed from the (type, urgency) distribution.
	totalDays := 0
	totalIssues := 0
	for _, c := range typeUrgency {
		totalDays += triage.EstimateResolution(c.IssueType, c.Urgency) * c.Count
		totalIssues += c.Count
	}
	if totalIssues > 0 {
		summary.AvgResolutionDays = float64(totalDays) / float64(totalIssues)
	}

	if err := s.cache.Set(ctx, analyticsSummaryCacheKey, summary, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache analytics summary", zap.Error(err))
	}
	return summary, nil
}
