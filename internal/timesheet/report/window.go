package report

import (
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
)

// Window modes
const (
	ModeTrailing     = "trailing"
	ModeCalendarWeek = "calendar_week"
)

// TrailingDays is the length of the rolling "this week" window
const TrailingDays = 7

// Window selects the rows a weekly summary is computed over. A zero To means
// the window is open-ended.
type Window struct {
	Mode string      `json:"mode"`
	From domain.Date `json:"from"`
	To   domain.Date `json:"to,omitzero"`
}

// Trailing is the rolling window date >= today - 7 days. Comparison is by
// calendar day, so a row dated exactly seven days ago is inside. Rows dated
// later than today are inside as well.
func Trailing(now time.Time) Window {
	return Window{Mode: ModeTrailing, From: domain.DateOf(now).AddDays(-TrailingDays)}
}

// CalendarWeek is Monday through Sunday of the week containing now, the same
// week the entry grid shows.
func CalendarWeek(now time.Time) Window {
	monday := domain.DateOf(now).Monday()
	return Window{Mode: ModeCalendarWeek, From: monday, To: monday.AddDays(6)}
}

// WindowFor picks the window by mode, falling back to Trailing
func WindowFor(mode string, now time.Time) Window {
	if mode == ModeCalendarWeek {
		return CalendarWeek(now)
	}
	return Trailing(now)
}

// Contains reports whether d falls inside the window
func (w Window) Contains(d domain.Date) bool {
	if d.Before(w.From) {
		return false
	}
	return w.To.IsZero() || !d.After(w.To)
}

// Filter returns the logs inside the window, keeping their order
func (w Window) Filter(logs []domain.TimeLog) []domain.TimeLog {
	out := make([]domain.TimeLog, 0, len(logs))
	for _, l := range logs {
		if w.Contains(l.Date) {
			out = append(out, l)
		}
	}
	return out
}
