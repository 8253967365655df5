package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/internal/timesheet/export"
	"github.com/cloksy/cloksy-backend/internal/timesheet/report"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// ReportQuery selects the rows of a weekly summary. An empty Scope covers
// every employee; otherwise only Scope's own logs are read. Employee narrows
// the employee breakdown and defaults to report.AllEmployees.
type ReportQuery struct {
	Scope    string
	Employee string
}

// ExportFile is a generated download
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	// ArchiveKey is set when the file was copied to the archive
	ArchiveKey string
}

// ReportService computes weekly summaries and their exports
type ReportService struct {
	logs      TimeLogStore
	archiver  Archiver
	publisher *events.TimesheetEventPublisher
	logger    *logger.Logger
	mode      string
	now       Clock
}

// NewReportService creates a new report service. mode is report.ModeTrailing
// or report.ModeCalendarWeek. archiver may be nil.
func NewReportService(
	logs TimeLogStore,
	archiver Archiver,
	publisher *events.TimesheetEventPublisher,
	log *logger.Logger,
	mode string,
) *ReportService {
	return &ReportService{
		logs:      logs,
		archiver:  archiver,
		publisher: publisher,
		logger:    log,
		mode:      mode,
		now:       time.Now,
	}
}

// Window returns the window a summary computed now would cover
func (s *ReportService) Window() report.Window {
	return report.WindowFor(s.mode, s.now())
}

// Weekly computes the summary for the current window
func (s *ReportService) Weekly(ctx context.Context, q ReportQuery) (*report.WeeklySummary, error) {
	window := s.Window()
	logs, err := s.logs.List(ctx, repository.TimeLogQuery{From: window.From, To: window.To, Email: q.Scope})
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(logs, window, q.Employee)
	return &summary, nil
}

// Export encodes one of the weekly downloads by file name. When an archiver
// is configured the file is also archived; archive failures are logged and
// the download is still returned.
func (s *ReportService) Export(ctx context.Context, q ReportQuery, name string) (*ExportFile, error) {
	summary, err := s.Weekly(ctx, q)
	if err != nil {
		return nil, err
	}

	file := &ExportFile{Name: name}
	switch name {
	case export.ProjectSummaryCSVName:
		file.ContentType = export.CSVContentType
		file.Data, err = export.ProjectTotalsCSV(summary.ProjectTotals)
	case export.ProjectSummaryXLSXName:
		file.ContentType = export.XLSXContentType
		file.Data, err = export.ProjectTotalsXLSX(summary.ProjectTotals)
	case export.DepartmentBreakdownCSVName:
		file.ContentType = export.CSVContentType
		file.Data, err = export.DepartmentBreakdownCSV(summary.DepartmentDay)
	case export.DepartmentBreakdownXLSXName:
		file.ContentType = export.XLSXContentType
		file.Data, err = export.DepartmentBreakdownXLSX(summary.DepartmentDay)
	default:
		return nil, errors.NotFound(fmt.Sprintf("export %q", name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if s.archiver != nil {
		key, err := s.archiver.Store(ctx, file.Name, file.ContentType, file.Data)
		if err != nil {
			s.logger.Error().Err(err).Str("export", name).Msg("failed to archive export")
		} else {
			file.ArchiveKey = key
			s.publisher.PublishExportCreated(ctx, name, key, len(file.Data))
		}
	}

	s.logger.Info().
		Str("export", name).
		Int("bytes", len(file.Data)).
		Str("window_from", summary.Window.From.String()).
		Msg("report exported")

	return file, nil
}
