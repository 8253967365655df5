package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
)

// FixtureFactory builds domain values with unique, readable defaults
type FixtureFactory struct {
	mu  sync.Mutex
	seq int
}

// NewFixtureFactory creates a new fixture factory
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{}
}

func (f *FixtureFactory) nextSeq() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return f.seq
}

// Project returns an active project in Engineering
func (f *FixtureFactory) Project(opts ...func(*domain.Project)) domain.Project {
	n := f.nextSeq()
	p := domain.Project{
		ID:         uuid.New().String(),
		Name:       fmt.Sprintf("Project %d", n),
		Client:     "Axial",
		Department: "Engineering",
		Status:     domain.ProjectActive,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// TimeLog returns a one-hour log for a unique employee on date
func (f *FixtureFactory) TimeLog(date domain.Date, opts ...func(*domain.TimeLog)) domain.TimeLog {
	n := f.nextSeq()
	l := domain.TimeLog{
		Email:      fmt.Sprintf("employee%d@axial.energy", n),
		Department: "Engineering",
		Project:    "Grid Upgrade",
		Date:       date,
		Hours:      1,
	}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// PTORequest returns a pending one-day request
func (f *FixtureFactory) PTORequest(from domain.Date, opts ...func(*domain.PTORequest)) domain.PTORequest {
	n := f.nextSeq()
	r := domain.PTORequest{
		Email:       fmt.Sprintf("employee%d@axial.energy", n),
		FromDate:    from,
		ToDate:      from,
		Reason:      "family",
		Status:      domain.PTOPending,
		SubmittedOn: from.AddDays(-7),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithEmail sets the employee email of a time log
func WithEmail(email string) func(*domain.TimeLog) {
	return func(l *domain.TimeLog) { l.Email = email }
}

// WithProject sets the project and hours of a time log
func WithProject(project string, hours float64) func(*domain.TimeLog) {
	return func(l *domain.TimeLog) {
		l.Project = project
		l.Hours = hours
	}
}

// WithDepartment sets the department of a time log
func WithDepartment(department string) func(*domain.TimeLog) {
	return func(l *domain.TimeLog) { l.Department = department }
}
