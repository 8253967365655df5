package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloksy/cloksy-backend/internal/timesheet/calendar"
	"github.com/cloksy/cloksy-backend/internal/timesheet/collector"
	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/internal/timesheet/export"
	"github.com/cloksy/cloksy-backend/internal/timesheet/report"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
	"github.com/cloksy/cloksy-backend/pkg/messaging"
)

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	pub, mock := newPublisher()
	store := &fakeProjects{}
	svc := NewProjectService(store, pub, logger.Nop())

	p := &domain.Project{Name: "  Grid Upgrade ", Client: "Axial", Department: "Engineering"}
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, "Grid Upgrade", p.Name)
	assert.Equal(t, domain.ProjectActive, p.Status)
	mock.AssertEventPublished(t, messaging.EventProjectCreated)

	err := svc.Create(ctx, &domain.Project{Department: "Engineering", Status: "archived"})
	assert.Equal(t, "VALIDATION_ERROR", appErrorCode(t, err))
	assert.Len(t, store.projects, 1)
}

func TestProjectService_Departments(t *testing.T) {
	store := &fakeProjects{projects: []domain.Project{
		{Name: "A", Department: "Operations"},
		{Name: "B", Department: "Engineering"},
		{Name: "C", Department: "Operations"},
	}}
	svc := NewProjectService(store, nil, logger.Nop())

	departments, err := svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Operations"}, departments)
}

func TestTimesheetService_Grid(t *testing.T) {
	store := &fakeProjects{projects: []domain.Project{
		{Name: "Beta", Department: "Engineering", Status: domain.ProjectActive},
		{Name: "Alpha", Department: "Engineering", Status: domain.ProjectActive},
		{Name: "Old", Department: "Engineering", Status: domain.ProjectInactive},
	}}
	svc := NewTimesheetService(store, &fakeTimeLogs{}, nil, logger.Nop())
	svc.now = fixedClock

	grid, err := svc.Grid(context.Background(), "Engineering")
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Beta", domain.PaidTimeOff, domain.CompanyHoliday, domain.CompanyEvent}, grid.Projects)
	assert.Equal(t, []string{"Mon 04", "Tue 05", "Wed 06", "Thu 07", "Fri 08"}, grid.Week.Labels)

	_, err = svc.Grid(context.Background(), " ")
	assert.Equal(t, "BAD_REQUEST", appErrorCode(t, err))
}

func TestTimesheetService_Submit(t *testing.T) {
	ctx := context.Background()
	monday := domain.MustParseDate("2024-03-04")

	catalog := func() *fakeProjects {
		return &fakeProjects{projects: []domain.Project{
			{Name: "Alpha", Department: "Engineering", Status: domain.ProjectActive},
			{Name: "Beta", Department: "Engineering", Status: domain.ProjectActive},
			{Name: "Old", Department: "Engineering", Status: domain.ProjectInactive},
			{Name: "Rigging", Department: "Field Ops", Status: domain.ProjectActive},
		}}
	}
	newService := func(logs *fakeTimeLogs, pub *events.TimesheetEventPublisher) *TimesheetService {
		svc := NewTimesheetService(catalog(), logs, pub, logger.Nop())
		svc.now = fixedClock
		return svc
	}

	t.Run("stores non-zero cells and publishes", func(t *testing.T) {
		pub, mock := newPublisher()
		logs := &fakeTimeLogs{}
		svc := newService(logs, pub)

		result, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{
			{Project: "Alpha", Hours: map[domain.Date]float64{monday: 2, monday.AddDays(1): 0}},
			{Project: "Beta", Hours: map[domain.Date]float64{monday.AddDays(2): 1.5}},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Rows)
		assert.Equal(t, 3.5, result.Hours)
		assert.Len(t, logs.logs, 2)
		mock.AssertEventPublished(t, messaging.EventTimesheetSubmitted)
	})

	t.Run("all zero stores nothing", func(t *testing.T) {
		pub, mock := newPublisher()
		logs := &fakeTimeLogs{}
		svc := newService(logs, pub)

		result, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{
			{Project: "Alpha", Hours: map[domain.Date]float64{monday: 0}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Rows)
		assert.NotNil(t, result.Logs)
		assert.Empty(t, logs.logs)
		mock.AssertNoEventsPublished(t)
	})

	t.Run("negative hours reject the grid", func(t *testing.T) {
		logs := &fakeTimeLogs{}
		svc := newService(logs, nil)

		_, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{
			{Project: "Alpha", Hours: map[domain.Date]float64{monday: 2}},
			{Project: "Beta", Hours: map[domain.Date]float64{monday: -1}},
		})
		assert.Equal(t, "VALIDATION_ERROR", appErrorCode(t, err))
		assert.Empty(t, logs.logs)
	})

	t.Run("projects outside the department grid are rejected", func(t *testing.T) {
		for _, project := range []string{"Old", "Rigging", "Unknown"} {
			logs := &fakeTimeLogs{}
			svc := newService(logs, nil)

			_, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{
				{Project: project, Hours: map[domain.Date]float64{monday: 2}},
			})

			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr), project)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Contains(t, appErr.Details, "rows[0].project")
			assert.Empty(t, logs.logs)
		}
	})

	t.Run("dates outside the current week are rejected", func(t *testing.T) {
		logs := &fakeTimeLogs{}
		svc := newService(logs, nil)

		_, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{
			{Project: "Alpha", Hours: map[domain.Date]float64{monday.AddDays(-7): 2}},
		})
		assert.Equal(t, "VALIDATION_ERROR", appErrorCode(t, err))
		assert.Empty(t, logs.logs)
	})

	t.Run("catalog failure propagates", func(t *testing.T) {
		projects := catalog()
		projects.err = stderrors.New("db down")
		svc := NewTimesheetService(projects, &fakeTimeLogs{}, nil, logger.Nop())
		svc.now = fixedClock

		_, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{})
		assert.EqualError(t, err, "db down")
	})

	t.Run("store failure propagates", func(t *testing.T) {
		logs := &fakeTimeLogs{err: stderrors.New("db down")}
		svc := newService(logs, nil)

		_, err := svc.Submit(ctx, "alice@axial.energy", "Engineering", collector.Grid{
			{Project: "Alpha", Hours: map[domain.Date]float64{monday: 2}},
		})
		assert.EqualError(t, err, "db down")
	})
}

func TestCalendarService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("event range stores one row per day", func(t *testing.T) {
		pub, mock := newPublisher()
		store := &fakeHolidays{}
		svc := NewCalendarService(store, pub, logger.Nop())

		entries, err := svc.Add(ctx, calendar.Input{
			Title: "Offsite",
			Kind:  calendar.KindEvent,
			From:  domain.MustParseDate("2024-05-01"),
			To:    domain.MustParseDate("2024-05-03"),
		})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		assert.Len(t, store.holidays, 3)
		for _, e := range entries {
			assert.Equal(t, domain.HolidayTypeEvent, e.Type)
		}
		mock.AssertEventPublished(t, messaging.EventCalendarEntryAdded)
	})

	t.Run("empty selection stores nothing", func(t *testing.T) {
		pub, mock := newPublisher()
		store := &fakeHolidays{}
		svc := NewCalendarService(store, pub, logger.Nop())

		entries, err := svc.Add(ctx, calendar.Input{Title: "Nothing", Kind: calendar.KindHoliday})
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Empty(t, store.holidays)
		mock.AssertNoEventsPublished(t)
	})

	t.Run("title is required", func(t *testing.T) {
		svc := NewCalendarService(&fakeHolidays{}, nil, logger.Nop())
		_, err := svc.Add(ctx, calendar.Input{Kind: calendar.KindHoliday, Dates: []domain.Date{domain.MustParseDate("2024-05-01")}})
		assert.Equal(t, "VALIDATION_ERROR", appErrorCode(t, err))
	})

	t.Run("ranges longer than a year are rejected", func(t *testing.T) {
		store := &fakeHolidays{}
		svc := NewCalendarService(store, nil, logger.Nop())

		_, err := svc.Add(ctx, calendar.Input{
			Title: "Forever",
			Kind:  calendar.KindEvent,
			From:  domain.MustParseDate("0001-01-01"),
			To:    domain.MustParseDate("9999-12-31"),
		})

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Contains(t, appErr.Details, "to")
		assert.Empty(t, store.holidays)
	})

	t.Run("a full leap year is allowed", func(t *testing.T) {
		store := &fakeHolidays{}
		svc := NewCalendarService(store, nil, logger.Nop())

		entries, err := svc.Add(ctx, calendar.Input{
			Title: "Year of the grid",
			Kind:  calendar.KindEvent,
			From:  domain.MustParseDate("2024-01-01"),
			To:    domain.MustParseDate("2024-12-31"),
		})
		require.NoError(t, err)
		assert.Len(t, entries, calendar.MaxDays)
	})
}

func TestCalendarService_Month(t *testing.T) {
	store := &fakeHolidays{holidays: []domain.Holiday{
		{Title: "Leap", Date: domain.MustParseDate("2024-02-29")},
		{Title: "Spring", Date: domain.MustParseDate("2024-03-20")},
		{Title: "Labour Day", Date: domain.MustParseDate("2024-05-01")},
	}}
	svc := NewCalendarService(store, nil, logger.Nop())
	svc.now = fixedClock

	view, err := svc.Month(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", view.Month)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Spring", view.Entries[0].Title)

	view, err = svc.Month(context.Background(), "2024-02")
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Leap", view.Entries[0].Title)

	_, err = svc.Month(context.Background(), "March")
	assert.Equal(t, "BAD_REQUEST", appErrorCode(t, err))
}

func TestPTOService_Workflow(t *testing.T) {
	ctx := context.Background()
	pub, mock := newPublisher()
	store := newFakePTO()
	svc := NewPTOService(store, pub, logger.Nop())
	svc.now = fixedClock

	req, err := svc.Request(ctx, "alice@axial.energy", domain.MustParseDate("2024-04-01"), domain.MustParseDate("2024-04-03"), "trip")
	require.NoError(t, err)
	assert.Equal(t, domain.PTOPending, req.Status)
	assert.Equal(t, domain.MustParseDate("2024-03-08"), req.SubmittedOn)
	mock.AssertEventPublished(t, messaging.EventPTORequested)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.Approve(ctx, req.ID, "admin@axial.energy")
	require.NoError(t, err)
	assert.Equal(t, domain.PTOApproved, approved.Status)
	mock.AssertEventPublished(t, messaging.EventPTOApproved)

	_, err = svc.Reject(ctx, req.ID, "lead-tl@axial.energy")
	assert.Equal(t, "CONFLICT", appErrorCode(t, err))

	stored, err := store.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PTOApproved, stored.Status)

	pending, err = svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	mine, err := svc.Mine(ctx, "alice@axial.energy")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestPTOService_RequestValidation(t *testing.T) {
	svc := NewPTOService(newFakePTO(), nil, logger.Nop())

	_, err := svc.Request(context.Background(), "alice@axial.energy",
		domain.MustParseDate("2024-04-03"), domain.MustParseDate("2024-04-01"), "")
	assert.Equal(t, "VALIDATION_ERROR", appErrorCode(t, err))

	_, err = svc.Request(context.Background(), "alice@axial.energy", domain.Date{}, domain.MustParseDate("2024-04-01"), "")
	assert.Equal(t, "VALIDATION_ERROR", appErrorCode(t, err))
}

func TestReportService_Weekly(t *testing.T) {
	logs := &fakeTimeLogs{logs: []domain.TimeLog{
		{Email: "alice@axial.energy", Department: "Engineering", Project: "Alpha", Date: domain.MustParseDate("2024-03-01"), Hours: 2},
		{Email: "alice@axial.energy", Department: "Engineering", Project: "Beta", Date: domain.MustParseDate("2024-03-05"), Hours: 3},
		{Email: "bob@axial.energy", Department: "Operations", Project: "Alpha", Date: domain.MustParseDate("2024-03-06"), Hours: 4},
		{Email: "bob@axial.energy", Department: "Operations", Project: "Alpha", Date: domain.MustParseDate("2024-02-29"), Hours: 8},
	}}

	t.Run("trailing window includes the boundary day", func(t *testing.T) {
		svc := NewReportService(logs, nil, nil, logger.Nop(), report.ModeTrailing)
		svc.now = fixedClock

		summary, err := svc.Weekly(context.Background(), ReportQuery{})
		require.NoError(t, err)

		assert.Equal(t, domain.MustParseDate("2024-03-01"), summary.Window.From)
		assert.Equal(t, 9.0, summary.TotalHours)
		assert.Equal(t, []string{"alice@axial.energy", "bob@axial.energy"}, summary.Employees)
	})

	t.Run("scope limits rows to one employee", func(t *testing.T) {
		svc := NewReportService(logs, nil, nil, logger.Nop(), report.ModeTrailing)
		svc.now = fixedClock

		summary, err := svc.Weekly(context.Background(), ReportQuery{Scope: "bob@axial.energy"})
		require.NoError(t, err)
		assert.Equal(t, "bob@axial.energy", logs.lastQuery.Email)
		assert.Equal(t, 4.0, summary.TotalHours)
	})

	t.Run("calendar week starts on monday", func(t *testing.T) {
		svc := NewReportService(logs, nil, nil, logger.Nop(), report.ModeCalendarWeek)
		svc.now = fixedClock

		summary, err := svc.Weekly(context.Background(), ReportQuery{})
		require.NoError(t, err)
		assert.Equal(t, domain.MustParseDate("2024-03-04"), summary.Window.From)
		assert.Equal(t, domain.MustParseDate("2024-03-10"), summary.Window.To)
		assert.Equal(t, 7.0, summary.TotalHours)
	})

	t.Run("empty window is not an error", func(t *testing.T) {
		svc := NewReportService(&fakeTimeLogs{}, nil, nil, logger.Nop(), report.ModeTrailing)
		summary, err := svc.Weekly(context.Background(), ReportQuery{})
		require.NoError(t, err)
		assert.True(t, summary.Empty)
	})
}

func TestReportService_Export(t *testing.T) {
	logs := &fakeTimeLogs{logs: []domain.TimeLog{
		{Email: "alice@axial.energy", Department: "Engineering", Project: "Beta", Date: domain.MustParseDate("2024-03-05"), Hours: 3},
		{Email: "alice@axial.energy", Department: "Engineering", Project: "Alpha", Date: domain.MustParseDate("2024-03-04"), Hours: 2.5},
	}}

	t.Run("project summary csv is archived", func(t *testing.T) {
		pub, mock := newPublisher()
		archiver := &fakeArchiver{}
		svc := NewReportService(logs, archiver, pub, logger.Nop(), report.ModeTrailing)
		svc.now = fixedClock

		file, err := svc.Export(context.Background(), ReportQuery{}, export.ProjectSummaryCSVName)
		require.NoError(t, err)

		assert.Equal(t, "project,hours\nAlpha,2.5\nBeta,3\n", string(file.Data))
		assert.Equal(t, export.CSVContentType, file.ContentType)
		assert.Equal(t, "exports/2024/03/08/project_summary.csv", file.ArchiveKey)
		mock.AssertEventPublished(t, messaging.EventReportExportCreated)
	})

	t.Run("department breakdown csv", func(t *testing.T) {
		svc := NewReportService(logs, nil, nil, logger.Nop(), report.ModeTrailing)
		svc.now = fixedClock

		file, err := svc.Export(context.Background(), ReportQuery{}, export.DepartmentBreakdownCSVName)
		require.NoError(t, err)
		assert.Equal(t, "department,day,project,hours\nEngineering,Monday,Alpha,2.5\nEngineering,Tuesday,Beta,3\n", string(file.Data))
		assert.Empty(t, file.ArchiveKey)
	})

	t.Run("archive failure still returns the file", func(t *testing.T) {
		pub, mock := newPublisher()
		svc := NewReportService(logs, &fakeArchiver{err: stderrors.New("denied")}, pub, logger.Nop(), report.ModeTrailing)
		svc.now = fixedClock

		file, err := svc.Export(context.Background(), ReportQuery{}, export.ProjectSummaryXLSXName)
		require.NoError(t, err)
		assert.NotEmpty(t, file.Data)
		assert.Empty(t, file.ArchiveKey)
		mock.AssertNoEventsPublished(t)
	})

	t.Run("unknown export", func(t *testing.T) {
		svc := NewReportService(logs, nil, nil, logger.Nop(), report.ModeTrailing)
		_, err := svc.Export(context.Background(), ReportQuery{}, "payroll.pdf")
		assert.Equal(t, "NOT_FOUND", appErrorCode(t, err))
	})
}
