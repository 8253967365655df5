package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
	"github.com/cloksy/cloksy-backend/pkg/testutil"
)

// friday 2024-03-08
var fixedNow = time.Date(2024, 3, 8, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newPublisher() (*events.TimesheetEventPublisher, *testutil.MockPublisher) {
	mock := testutil.NewMockPublisher()
	return events.New(mock, logger.Nop()), mock
}

type fakeProjects struct {
	projects []domain.Project
	err      error
}

func (f *fakeProjects) Create(_ context.Context, p *domain.Project) error {
	if f.err != nil {
		return f.err
	}
	p.ID = "p-" + p.Name
	f.projects = append(f.projects, *p)
	return nil
}

func (f *fakeProjects) List(_ context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	out := []domain.Project{}
	for _, p := range f.projects {
		if filter.Department != "" && p.Department != filter.Department {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, f.err
}

func (f *fakeProjects) ActiveNames(_ context.Context, department string) ([]string, error) {
	names := []string{}
	for _, p := range f.projects {
		if p.Department == department && p.Status == domain.ProjectActive {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names, f.err
}

func (f *fakeProjects) Departments(context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.projects {
		if !seen[p.Department] {
			seen[p.Department] = true
			out = append(out, p.Department)
		}
	}
	sort.Strings(out)
	return out, f.err
}

type fakeTimeLogs struct {
	logs      []domain.TimeLog
	lastQuery repository.TimeLogQuery
	err       error
}

func (f *fakeTimeLogs) InsertBatch(_ context.Context, logs []domain.TimeLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, logs...)
	return nil
}

func (f *fakeTimeLogs) List(_ context.Context, q repository.TimeLogQuery) ([]domain.TimeLog, error) {
	f.lastQuery = q
	out := []domain.TimeLog{}
	for _, l := range f.logs {
		if l.Date.Before(q.From) || (!q.To.IsZero() && l.Date.After(q.To)) {
			continue
		}
		if q.Email != "" && l.Email != q.Email {
			continue
		}
		out = append(out, l)
	}
	return out, f.err
}

type fakeHolidays struct {
	holidays []domain.Holiday
	err      error
}

func (f *fakeHolidays) InsertBatch(_ context.Context, holidays []domain.Holiday) error {
	if f.err != nil {
		return f.err
	}
	f.holidays = append(f.holidays, holidays...)
	return nil
}

func (f *fakeHolidays) ListBetween(_ context.Context, from, to domain.Date) ([]domain.Holiday, error) {
	out := []domain.Holiday{}
	for _, h := range f.holidays {
		if !h.Date.Before(from) && h.Date.Before(to) {
			out = append(out, h)
		}
	}
	return out, f.err
}

// fakePTO mirrors the conditional update of the repository
type fakePTO struct {
	mu       sync.Mutex
	requests map[string]*domain.PTORequest
	seq      int
}

func newFakePTO() *fakePTO {
	return &fakePTO{requests: map[string]*domain.PTORequest{}}
}

func (f *fakePTO) Create(_ context.Context, req *domain.PTORequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.ID = "r" + string(rune('0'+f.seq))
	req.Status = domain.PTOPending
	stored := *req
	f.requests[req.ID] = &stored
	return nil
}

func (f *fakePTO) GetByID(_ context.Context, id string) (*domain.PTORequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, errors.NotFound("pto request")
	}
	out := *req
	return &out, nil
}

func (f *fakePTO) ListPending(context.Context) ([]domain.PTORequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.PTORequest{}
	for _, r := range f.requests {
		if r.Status == domain.PTOPending {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePTO) ListByEmail(_ context.Context, email string) ([]domain.PTORequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.PTORequest{}
	for _, r := range f.requests {
		if r.Email == email {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePTO) UpdateStatus(_ context.Context, id string, next domain.PTOStatus, reviewer string) (*domain.PTORequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, errors.NotFound("pto request")
	}
	if !req.Status.CanTransitionTo(next) {
		return nil, errors.Conflict("pto request is already " + string(req.Status))
	}
	req.Status = next
	req.ReviewedBy = &reviewer
	out := *req
	return &out, nil
}

type fakeArchiver struct {
	names []string
	err   error
}

func (f *fakeArchiver) Store(_ context.Context, name, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	return "exports/2024/03/08/" + name, nil
}
