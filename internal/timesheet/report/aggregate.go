// Package report aggregates time logs into weekly totals and weekday pivots.
// Everything here is a pure function of the rows passed in.
package report

import (
	"sort"
	"time"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
)

// Total column labels
const (
	EmployeeTotalLabel   = "Total Hours"
	DepartmentTotalLabel = "Total"
)

// Weekdays are the pivot rows, in order
var Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// ProjectTotal is the summed hours of one project
type ProjectTotal struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
}

// ProjectTotals sums hours per project, sorted by project name
func ProjectTotals(logs []domain.TimeLog) []ProjectTotal {
	sums := map[string]float64{}
	for _, l := range logs {
		sums[l.Project] += l.Hours
	}

	out := make([]ProjectTotal, 0, len(sums))
	for _, p := range sortedKeys(sums) {
		out = append(out, ProjectTotal{Project: p, Hours: sums[p]})
	}
	return out
}

// Pivot is a weekday by project matrix with a trailing row-total column
type Pivot struct {
	Days       []string    `json:"days"`
	Projects   []string    `json:"projects"`
	Hours      [][]float64 `json:"hours"` // Hours[day][project]
	TotalLabel string      `json:"total_label"`
	Totals     []float64   `json:"totals"`
}

// Columns returns the project columns followed by the total column
func (p Pivot) Columns() []string {
	return append(append([]string{}, p.Projects...), p.TotalLabel)
}

// Value returns the hours for a weekday name and project, 0 when absent
func (p Pivot) Value(day, project string) float64 {
	di, pi := indexOf(p.Days, day), indexOf(p.Projects, project)
	if di < 0 || pi < 0 {
		return 0
	}
	return p.Hours[di][pi]
}

// Total returns the row total for a weekday name
func (p Pivot) Total(day string) float64 {
	if di := indexOf(p.Days, day); di >= 0 {
		return p.Totals[di]
	}
	return 0
}

// EmployeePivot builds the Monday..Friday pivot of one employee's rows.
// There are always exactly five rows. Weekend rows add their project as a
// column but contribute no hours.
func EmployeePivot(logs []domain.TimeLog) Pivot {
	return buildPivot(logs, EmployeeTotalLabel)
}

// DepartmentPivot is EmployeePivot over a department's rows with a "Total" column
func DepartmentPivot(logs []domain.TimeLog) Pivot {
	return buildPivot(logs, DepartmentTotalLabel)
}

func buildPivot(logs []domain.TimeLog, totalLabel string) Pivot {
	projectSet := map[string]float64{}
	for _, l := range logs {
		projectSet[l.Project] += 0
	}
	projects := sortedKeys(projectSet)

	p := Pivot{
		Days:       make([]string, len(Weekdays)),
		Projects:   projects,
		Hours:      make([][]float64, len(Weekdays)),
		TotalLabel: totalLabel,
		Totals:     make([]float64, len(Weekdays)),
	}
	for i, wd := range Weekdays {
		p.Days[i] = wd.String()
		p.Hours[i] = make([]float64, len(projects))
	}

	for _, l := range logs {
		di := weekdayRow(l.Date.Weekday())
		if di < 0 {
			continue
		}
		p.Hours[di][indexOf(projects, l.Project)] += l.Hours
	}

	for i, row := range p.Hours {
		for _, v := range row {
			p.Totals[i] += v
		}
	}
	return p
}

// EmployeeBreakdown is one employee's pivot
type EmployeeBreakdown struct {
	Email string `json:"email"`
	Pivot Pivot  `json:"pivot"`
}

// EmployeePivots builds one pivot per distinct email, sorted by email
func EmployeePivots(logs []domain.TimeLog) []EmployeeBreakdown {
	groups := groupBy(logs, func(l domain.TimeLog) string { return l.Email })
	out := make([]EmployeeBreakdown, 0, len(groups))
	for _, email := range sortedKeys(groups) {
		out = append(out, EmployeeBreakdown{Email: email, Pivot: EmployeePivot(groups[email])})
	}
	return out
}

// DepartmentBreakdown is one department's pivot
type DepartmentBreakdown struct {
	Department string `json:"department"`
	Pivot      Pivot  `json:"pivot"`
}

// DepartmentPivots builds one pivot per distinct department, sorted by name
func DepartmentPivots(logs []domain.TimeLog) []DepartmentBreakdown {
	groups := groupBy(logs, func(l domain.TimeLog) string { return l.Department })
	out := make([]DepartmentBreakdown, 0, len(groups))
	for _, dept := range sortedKeys(groups) {
		out = append(out, DepartmentBreakdown{Department: dept, Pivot: DepartmentPivot(groups[dept])})
	}
	return out
}

// DepartmentDayTotal is one row of the long-form department breakdown
type DepartmentDayTotal struct {
	Department string  `json:"department"`
	Day        string  `json:"day"`
	Project    string  `json:"project"`
	Hours      float64 `json:"hours"`
}

// DepartmentDayTotals groups by (department, weekday, project) and sums hours.
// Weekend days are kept. Rows are ordered by department, weekday from Monday
// to Sunday, then project.
func DepartmentDayTotals(logs []domain.TimeLog) []DepartmentDayTotal {
	type key struct {
		dept    string
		day     time.Weekday
		project string
	}

	sums := map[key]float64{}
	for _, l := range logs {
		sums[key{l.Department, l.Date.Weekday(), l.Project}] += l.Hours
	}

	keys := make([]key, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.dept != b.dept {
			return a.dept < b.dept
		}
		if a.day != b.day {
			return mondayFirst(a.day) < mondayFirst(b.day)
		}
		return a.project < b.project
	})

	out := make([]DepartmentDayTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, DepartmentDayTotal{Department: k.dept, Day: k.day.String(), Project: k.project, Hours: sums[k]})
	}
	return out
}

func mondayFirst(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func weekdayRow(wd time.Weekday) int {
	for i, w := range Weekdays {
		if w == wd {
			return i
		}
	}
	return -1
}

func groupBy(logs []domain.TimeLog, key func(domain.TimeLog) string) map[string][]domain.TimeLog {
	out := map[string][]domain.TimeLog{}
	for _, l := range logs {
		k := key(l)
		out[k] = append(out[k], l)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
