// Package collector turns a submitted weekly entry grid into time log records.
package collector

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/errors"
)

// HoursStep is the granularity of hour entries
const HoursStep = 0.25

// Row holds one project's hours keyed by day
type Row struct {
	Project string                  `json:"project"`
	Hours   map[domain.Date]float64 `json:"hours"`
}

// Grid is the ordered set of rows submitted from the entry form
type Grid []Row

// Sheet is what a submission may contain: the days of one entry week and the
// project rows offered for the department
type Sheet struct {
	Week     Week
	Projects []string
}

// NewSheet builds the sheet of the week containing now
func NewSheet(now time.Time, active []string) Sheet {
	return Sheet{Week: WorkWeek(now), Projects: GridProjects(active)}
}

func (s Sheet) hasDay(d domain.Date) bool {
	for _, wd := range s.Week.Dates {
		if wd.Equal(d) {
			return true
		}
	}
	return false
}

func (s Sheet) hasProject(name string) bool {
	for _, p := range s.Projects {
		if p == name {
			return true
		}
	}
	return false
}

// Collect returns one TimeLog per cell with hours > 0, in row order and then
// ascending date order. Zero cells are dropped. Other cells must fall on the
// sheet's weekdays and rows must name distinct sheet projects, so a grid
// yields at most len(sheet.Projects) x 5 records. Any invalid cell rejects the
// whole grid with a validation error and no records.
func Collect(email, department string, sheet Sheet, grid Grid) ([]domain.TimeLog, error) {
	details := map[string]string{}
	if strings.TrimSpace(email) == "" {
		details["email"] = "this field is required"
	}
	if strings.TrimSpace(department) == "" {
		details["department"] = "this field is required"
	}

	var logs []domain.TimeLog
	seen := map[string]bool{}
	for i, row := range grid {
		field := fmt.Sprintf("rows[%d].project", i)
		switch {
		case strings.TrimSpace(row.Project) == "":
			details[field] = "this field is required"
			continue
		case !sheet.hasProject(row.Project):
			details[field] = fmt.Sprintf("%q is not an active project of %s", row.Project, department)
			continue
		case seen[row.Project]:
			details[field] = fmt.Sprintf("%q appears in more than one row", row.Project)
			continue
		}
		seen[row.Project] = true

		for _, day := range sortedDays(row.Hours) {
			hours := row.Hours[day]
			field := fmt.Sprintf("rows[%d].hours[%s]", i, day)
			if msg := checkHours(hours); msg != "" {
				details[field] = msg
				continue
			}
			if hours == 0 {
				continue
			}
			if msg := checkDay(sheet, day); msg != "" {
				details[field] = msg
				continue
			}
			logs = append(logs, domain.TimeLog{
				Email:      email,
				Department: department,
				Project:    row.Project,
				Date:       day,
				Hours:      hours,
				Notes:      "",
			})
		}
	}

	if len(details) > 0 {
		return nil, errors.Validation(details)
	}
	return logs, nil
}

func checkDay(sheet Sheet, d domain.Date) string {
	switch {
	case d.IsWeekend():
		return "weekends are not part of the entry week"
	case !sheet.hasDay(d):
		return "outside the current entry week"
	}
	return ""
}

func checkHours(h float64) string {
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0):
		return "must be a number"
	case h < 0:
		return "must be zero or greater"
	case math.Mod(h, HoursStep) != 0:
		return fmt.Sprintf("must be a multiple of %g", HoursStep)
	}
	return ""
}

func sortedDays(m map[domain.Date]float64) []domain.Date {
	days := make([]domain.Date, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// GridProjects appends the non-project buckets to the department's active projects
func GridProjects(active []string) []string {
	out := make([]string, 0, len(active)+3)
	out = append(out, active...)
	return append(out, domain.PaidTimeOff, domain.CompanyHoliday, domain.CompanyEvent)
}

// Week is the Monday-aligned five-day entry week
type Week struct {
	Dates  []domain.Date `json:"dates"`
	Labels []string      `json:"labels"`
}

// WorkWeek returns Monday to Friday of the week containing now, labelled "Mon 02"
func WorkWeek(now time.Time) Week {
	monday := domain.DateOf(now).Monday()
	w := Week{Dates: make([]domain.Date, 5), Labels: make([]string, 5)}
	for i := range w.Dates {
		d := monday.AddDays(i)
		w.Dates[i] = d
		w.Labels[i] = d.Format("Mon 02")
	}
	return w
}
