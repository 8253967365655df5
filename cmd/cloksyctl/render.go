package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cloksy/cloksy-backend/internal/timesheet/export"
	"github.com/cloksy/cloksy-backend/internal/timesheet/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// newTable returns a bordered table whose first column is a label and the
// rest are right-aligned numbers
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
}

func renderProjectTotals(totals []report.ProjectTotal, total float64) string {
	t := newTable("Project", "Hours")
	for _, pt := range totals {
		t.Row(pt.Project, export.FormatHours(pt.Hours))
	}
	t.Row("Total", export.FormatHours(total))
	return t.String()
}

func renderPivot(p report.Pivot) string {
	t := newTable(append([]string{"Day"}, p.Columns()...)...)
	for i, day := range p.Days {
		row := make([]string, 0, len(p.Projects)+2)
		row = append(row, day)
		for j := range p.Projects {
			row = append(row, export.FormatHours(p.Hours[i][j]))
		}
		row = append(row, export.FormatHours(p.Totals[i]))
		t.Row(row...)
	}
	return t.String()
}

// renderSummary lays out the whole weekly summary as the CLI prints it
func renderSummary(s *report.WeeklySummary) string {
	var b strings.Builder

	window := fmt.Sprintf("window %s from %s", s.Window.Mode, s.Window.From)
	if !s.Window.To.IsZero() {
		window += " to " + s.Window.To.String()
	}
	b.WriteString(mutedStyle.Render(window) + "\n\n")

	if s.Empty {
		b.WriteString("No time logged in this window.\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Project totals") + "\n")
	b.WriteString(renderProjectTotals(s.ProjectTotals, s.TotalHours) + "\n")

	for _, v := range s.EmployeeViews {
		b.WriteString("\n" + titleStyle.Render("Employee "+v.Email) + "\n")
		b.WriteString(renderPivot(v.Pivot) + "\n")
	}

	for _, d := range s.Departments {
		b.WriteString("\n" + titleStyle.Render("Department "+d.Department) + "\n")
		b.WriteString(renderPivot(d.Pivot) + "\n")
	}

	return b.String()
}
