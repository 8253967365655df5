// Package service implements the timesheet commands and queries on top of the
// repositories. Each method is one discrete request: read current state,
// validate, commit, return a fresh view.
package service

import (
	"context"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
)

// ProjectStore is implemented by repository.ProjectRepository
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error)
	ActiveNames(ctx context.Context, department string) ([]string, error)
	Departments(ctx context.Context) ([]string, error)
}

// TimeLogStore is implemented by repository.TimeLogRepository
type TimeLogStore interface {
	InsertBatch(ctx context.Context, logs []domain.TimeLog) error
	List(ctx context.Context, q repository.TimeLogQuery) ([]domain.TimeLog, error)
}

// HolidayStore is implemented by repository.HolidayRepository
type HolidayStore interface {
	InsertBatch(ctx context.Context, holidays []domain.Holiday) error
	ListBetween(ctx context.Context, from, to domain.Date) ([]domain.Holiday, error)
}

// PTOStore is implemented by repository.PTORepository
type PTOStore interface {
	Create(ctx context.Context, req *domain.PTORequest) error
	GetByID(ctx context.Context, id string) (*domain.PTORequest, error)
	ListPending(ctx context.Context) ([]domain.PTORequest, error)
	ListByEmail(ctx context.Context, email string) ([]domain.PTORequest, error)
	UpdateStatus(ctx context.Context, id string, next domain.PTOStatus, reviewer string) (*domain.PTORequest, error)
}

// Archiver stores a copy of a generated export and returns its key
type Archiver interface {
	Store(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time
