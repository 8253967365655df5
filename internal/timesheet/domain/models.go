package domain

import "time"

// ProjectStatus is active or inactive. Only active projects appear on the entry grid.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectInactive ProjectStatus = "inactive"
)

// HolidayType distinguishes single-day holidays from ranged company events
type HolidayType string

const (
	HolidayTypeHoliday HolidayType = "holiday"
	HolidayTypeEvent   HolidayType = "event"
)

// Role of an authenticated employee
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "team_lead"
	RoleEmployee Role = "employee"
)

// Pseudo-projects that bucket non-project time on the entry grid
const (
	PaidTimeOff    = "Paid Time Off"
	CompanyHoliday = "Company Holiday"
	CompanyEvent   = "Company Event"
)

// Project is an entry in the project catalog
type Project struct {
	ID         string        `db:"id" json:"id"`
	Name       string        `db:"name" json:"name"`
	Client     string        `db:"client" json:"client"`
	Department string        `db:"department" json:"department"`
	Status     ProjectStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// TimeLog is one (employee, project, day) hours entry. Rows are append-only.
type TimeLog struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
	Project    string    `db:"project" json:"project"`
	Date       Date      `db:"date" json:"date"`
	Hours      float64   `db:"hours" json:"hours"`
	Notes      string    `db:"notes" json:"notes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Holiday is one company date. Ranged input is stored as one row per day.
type Holiday struct {
	ID        string      `db:"id" json:"id"`
	Title     string      `db:"title" json:"title"`
	Date      Date        `db:"date" json:"date"`
	Type      HolidayType `db:"type" json:"type"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// PTORequest is a paid time off request moving through the approval workflow
type PTORequest struct {
	ID          string     `db:"id" json:"id"`
	Email       string     `db:"email" json:"email"`
	FromDate    Date       `db:"from_date" json:"from_date"`
	ToDate      Date       `db:"to_date" json:"to_date"`
	Reason      string     `db:"reason" json:"reason"`
	Status      PTOStatus  `db:"status" json:"status"`
	SubmittedOn Date       `db:"submitted_on" json:"submitted_on"`
	ReviewedBy  *string    `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
}
