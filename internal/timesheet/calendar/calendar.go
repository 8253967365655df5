// Package calendar expands holiday and event input into one record per concrete day.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
)

// Kind selects how the input dates are interpreted
type Kind string

const (
	// KindHoliday takes a discrete set of dates
	KindHoliday Kind = "holiday"
	// KindEvent takes an inclusive from/to range
	KindEvent Kind = "event"
)

// MaxDays is the most days a single entry may cover
const MaxDays = 366

const secondsPerDay = 24 * 60 * 60

// Input describes one calendar entry as submitted by a team lead or admin
type Input struct {
	Title string
	Kind  Kind
	Dates []domain.Date // KindHoliday
	From  domain.Date   // KindEvent
	To    domain.Date   // KindEvent
}

// Expand returns one Holiday per concrete date. Holiday input keeps the given
// order and duplicates; event input yields ascending days from From to To.
// An empty selection or a reversed range yields nothing.
func Expand(in Input) []domain.Holiday {
	var (
		dates []domain.Date
		typ   domain.HolidayType
	)

	switch in.Kind {
	case KindEvent:
		dates = DateRange(in.From, in.To)
		typ = domain.HolidayTypeEvent
	default:
		dates = in.Dates
		typ = domain.HolidayTypeHoliday
	}

	out := make([]domain.Holiday, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.Holiday{Title: in.Title, Date: d, Type: typ})
	}
	return out
}

// Days returns how many records Expand would produce for in
func (in Input) Days() int {
	if in.Kind == KindEvent {
		return Span(in.From, in.To)
	}
	return len(in.Dates)
}

// Span is the number of days in [from, to], 0 when to is before from
func Span(from, to domain.Date) int {
	if to.Before(from) {
		return 0
	}
	return int((to.Unix()-from.Unix())/secondsPerDay) + 1
}

// DateRange returns every day in [from, to]. It is empty when to is before from.
func DateRange(from, to domain.Date) []domain.Date {
	days := Span(from, to)
	if days == 0 {
		return nil
	}
	out := make([]domain.Date, 0, days)
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// ParseKind accepts "holiday" or "event", case-insensitively. Selector labels
// such as "event (range)" are matched on the word they contain.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, string(KindEvent)):
		return KindEvent, nil
	case strings.Contains(s, string(KindHoliday)):
		return KindHoliday, nil
	default:
		return "", fmt.Errorf("unknown calendar entry type %q", s)
	}
}

// MonthBounds returns the first day of month and the first day of the next month
func MonthBounds(month time.Time) (domain.Date, domain.Date) {
	first := domain.NewDate(month.Year(), month.Month(), 1)
	return first, domain.Date{Time: first.AddDate(0, 1, 0)}
}

// ParseMonth parses YYYY-MM
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t, nil
}
