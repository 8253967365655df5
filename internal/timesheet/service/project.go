package service

import (
	"context"
	"strings"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// ProjectService manages the project catalog
type ProjectService struct {
	projects  ProjectStore
	publisher *events.TimesheetEventPublisher
	logger    *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projects ProjectStore, publisher *events.TimesheetEventPublisher, log *logger.Logger) *ProjectService {
	return &ProjectService{projects: projects, publisher: publisher, logger: log}
}

// Create adds a project to the catalog. Status defaults to active.
func (s *ProjectService) Create(ctx context.Context, p *domain.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Department = strings.TrimSpace(p.Department)
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}

	details := map[string]string{}
	if p.Name == "" {
		details["name"] = "this field is required"
	}
	if p.Department == "" {
		details["department"] = "this field is required"
	}
	if p.Status != domain.ProjectActive && p.Status != domain.ProjectInactive {
		details["status"] = "must be one of: active inactive"
	}
	if len(details) > 0 {
		return errors.Validation(details)
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return err
	}

	s.publisher.PublishProjectCreated(ctx, p)

	s.logger.Info().
		Str("project_id", p.ID).
		Str("name", p.Name).
		Str("department", p.Department).
		Msg("project created")

	return nil
}

// List lists projects matching filter
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return s.projects.List(ctx, filter)
}

// Departments lists the departments that own at least one project
func (s *ProjectService) Departments(ctx context.Context) ([]string, error) {
	return s.projects.Departments(ctx)
}
