package models

import "time"

// DailyCount is one day's worth of reported issues.
type DailyCount struct {
	Date  string `db:"day" json:"date"`
	Count int    `db:"count" json:"count"`
}

// AnalyticsSummary aggregates the stored issues for dashboard use.
type AnalyticsSummary struct {
	TotalReports      int            `json:"totalReports"`
	ActiveIssues      int            `json:"activeIssues"`
	StatusCounts      map[string]int `json:"issueStatusCounts"`
	UrgencyCounts     map[string]int `json:"issueUrgencyCounts"`
	ReportsOverTime   []DailyCount   `json:"reportsOverTime"`
	AvgResolutionDays float64        `json:"avgEstimatedResolutionDays"`
	GeneratedAt       time.Time      `json:"generatedAt"`
}

// SystemMetrics is a lightweight snapshot of service instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
