package service

import (
	"context"
	"strings"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/collector"
	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// GridView is the empty entry form for one department
type GridView struct {
	Department string         `json:"department"`
	Week       collector.Week `json:"week"`
	Projects   []string       `json:"projects"`
}

// SubmitResult reports what a submission stored
type SubmitResult struct {
	Rows  int              `json:"rows"`
	Hours float64          `json:"hours"`
	Logs  []domain.TimeLog `json:"logs"`
}

// TimesheetService builds the entry grid and stores submissions
type TimesheetService struct {
	projects  ProjectStore
	logs      TimeLogStore
	publisher *events.TimesheetEventPublisher
	logger    *logger.Logger
	now       Clock
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(
	projects ProjectStore,
	logs TimeLogStore,
	publisher *events.TimesheetEventPublisher,
	log *logger.Logger,
) *TimesheetService {
	return &TimesheetService{
		projects:  projects,
		logs:      logs,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Grid returns the current work week and the department's grid rows
func (s *TimesheetService) Grid(ctx context.Context, department string) (*GridView, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, errors.BadRequest("department is required")
	}

	active, err := s.projects.ActiveNames(ctx, department)
	if err != nil {
		return nil, err
	}

	sheet := collector.NewSheet(s.now(), active)
	return &GridView{
		Department: department,
		Week:       sheet.Week,
		Projects:   sheet.Projects,
	}, nil
}

// Submit collects the non-zero cells of grid and stores them in one
// transaction. Cells are limited to the current work week and the
// department's grid projects. An all-zero grid stores nothing and is not an
// error.
func (s *TimesheetService) Submit(ctx context.Context, email, department string, grid collector.Grid) (*SubmitResult, error) {
	department = strings.TrimSpace(department)

	var active []string
	if department != "" {
		var err error
		if active, err = s.projects.ActiveNames(ctx, department); err != nil {
			return nil, err
		}
	}

	logs, err := collector.Collect(email, department, collector.NewSheet(s.now(), active), grid)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Rows: len(logs), Logs: logs}
	if len(logs) == 0 {
		result.Logs = []domain.TimeLog{}
		return result, nil
	}

	if err := s.logs.InsertBatch(ctx, logs); err != nil {
		return nil, err
	}
	for _, l := range logs {
		result.Hours += l.Hours
	}

	s.publisher.PublishTimesheetSubmitted(ctx, email, department, logs)

	s.logger.Info().
		Str("email", email).
		Str("department", department).
		Int("rows", result.Rows).
		Float64("hours", result.Hours).
		Msg("timesheet submitted")

	return result, nil
}
