package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/calendar"
	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// MonthView lists the calendar entries of one month
type MonthView struct {
	Month   string           `json:"month"`
	Entries []domain.Holiday `json:"entries"`
}

// CalendarService maintains the company calendar
type CalendarService struct {
	holidays  HolidayStore
	publisher *events.TimesheetEventPublisher
	logger    *logger.Logger
	now       Clock
}

// NewCalendarService creates a new calendar service
func NewCalendarService(holidays HolidayStore, publisher *events.TimesheetEventPublisher, log *logger.Logger) *CalendarService {
	return &CalendarService{holidays: holidays, publisher: publisher, logger: log, now: time.Now}
}

// Add expands in into one entry per day and stores them together. An empty
// selection stores nothing.
func (s *CalendarService) Add(ctx context.Context, in calendar.Input) ([]domain.Holiday, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, errors.Validation(map[string]string{"title": "this field is required"})
	}
	if in.Days() > calendar.MaxDays {
		field := "dates"
		if in.Kind == calendar.KindEvent {
			field = "to"
		}
		return nil, errors.Validation(map[string]string{field: fmt.Sprintf("an entry may cover at most %d days", calendar.MaxDays)})
	}

	entries := calendar.Expand(in)
	if len(entries) == 0 {
		return entries, nil
	}

	if err := s.holidays.InsertBatch(ctx, entries); err != nil {
		return nil, err
	}

	s.publisher.PublishCalendarEntryAdded(ctx, entries)

	s.logger.Info().
		Str("title", in.Title).
		Str("type", string(entries[0].Type)).
		Int("days", len(entries)).
		Msg("calendar entry added")

	return entries, nil
}

// Month lists the entries of month (YYYY-MM). An empty month means the current one.
func (s *CalendarService) Month(ctx context.Context, month string) (*MonthView, error) {
	var (
		m   time.Time
		err error
	)
	if month == "" {
		m = s.now()
	} else if m, err = calendar.ParseMonth(month); err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	from, to := calendar.MonthBounds(m)
	entries, err := s.holidays.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &MonthView{Month: from.Format("2006-01"), Entries: entries}, nil
}
