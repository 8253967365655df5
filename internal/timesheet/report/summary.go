package report

import (
	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
)

// AllEmployees selects every employee in the employee breakdown
const AllEmployees = "All"

// WeeklySummary is the view model behind the weekly summary screen and exports
type WeeklySummary struct {
	Window        Window                `json:"window"`
	Empty         bool                  `json:"empty"`
	TotalHours    float64               `json:"total_hours"`
	ProjectTotals []ProjectTotal        `json:"project_totals"`
	Employees     []string              `json:"employees"`
	Employee      string                `json:"employee"`
	EmployeeViews []EmployeeBreakdown   `json:"employee_breakdown"`
	Departments   []DepartmentBreakdown `json:"department_breakdown"`
	DepartmentDay []DepartmentDayTotal  `json:"department_day_totals"`
}

// Summarize windows logs and computes every aggregation. employee narrows the
// employee breakdown to one email; "" or AllEmployees keeps everyone. Totals
// and department views always cover the whole window.
func Summarize(logs []domain.TimeLog, window Window, employee string) WeeklySummary {
	rows := window.Filter(logs)
	if employee == "" {
		employee = AllEmployees
	}

	s := WeeklySummary{
		Window:        window,
		Empty:         len(rows) == 0,
		ProjectTotals: ProjectTotals(rows),
		Employee:      employee,
		Departments:   DepartmentPivots(rows),
		DepartmentDay: DepartmentDayTotals(rows),
	}

	for _, t := range s.ProjectTotals {
		s.TotalHours += t.Hours
	}

	views := EmployeePivots(rows)
	s.Employees = make([]string, 0, len(views))
	for _, v := range views {
		s.Employees = append(s.Employees, v.Email)
	}

	if employee == AllEmployees {
		s.EmployeeViews = views
	} else {
		s.EmployeeViews = []EmployeeBreakdown{}
		for _, v := range views {
			if v.Email == employee {
				s.EmployeeViews = append(s.EmployeeViews, v)
			}
		}
	}

	return s
}
