package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/civicpulse/issues-api/internal/models"
	appErrors "github.com/civicpulse/issues-api/pkg/errors"
	"github.com/civicpulse/issues-api/pkg/export"
)

// Export formats accepted by the issue export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"IssueID", "IssueType", "Location", "Urgency", "Status", "Sentiment", "Reports", "Timestamp", "AssignedTo"}

type issueLister interface {
	List(ctx context.Context, filter models.IssueFilter) ([]models.Issue, error)
}

// ExportService renders filtered issue listings as downloadable files.
type ExportService struct {
	issues  issueLister
	maxRows int
	logger  *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(issues issueLister, maxRows int, logger *zap.Logger) *ExportService {
	if maxRows <= 0 {
		maxRows = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{issues: issues, maxRows: maxRows, logger: logger}
}

// ExportResult carries the rendered bytes plus response metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Payload     []byte
}

// Render produces the export in the requested format, applying the same
// filters as the list endpoint.
func (s *ExportService) Render(ctx context.Context, format string, filter models.IssueFilter) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	if filter.Limit <= 0 || filter.Limit > s.maxRows {
		filter.Limit = s.maxRows
	}
	issues, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(issues))}
	for _, issue := range issues {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"IssueID":    issue.IssueID,
			"IssueType":  issue.IssueType,
			"Location":   issue.Location,
			"Urgency":    issue.Urgency,
			"Status":     issue.Status,
			"Sentiment":  issue.Sentiment,
			"Reports":    strconv.Itoa(issue.Reports),
			"Timestamp":  issue.Timestamp,
			"AssignedTo": issue.AssignedTo,
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := export.RenderCSV(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{ContentType: "text/csv", Filename: "issues.csv", Payload: payload}, nil
	default:
		payload, err := export.RenderPDF(dataset, "Civic Issues")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{ContentType: "application/pdf", Filename: "issues.pdf", Payload: payload}, nil
	}
}
