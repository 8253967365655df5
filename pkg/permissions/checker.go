// Package permissions checks role permission strings with wildcard support.
//
// Permission format:
//   - "*" grants everything
//   - "resource.*" grants every action on a resource (e.g. "pto.*")
//   - "resource.action" grants one action (e.g. "pto.review")
package permissions

import "strings"

// Permissions used by the timesheet service
const (
	All = "*"

	TimesheetRead  = "timesheet.read"
	TimesheetWrite = "timesheet.write"
	TimesheetAll   = "timesheet.*"

	ProjectsRead  = "projects.read"
	ProjectsWrite = "projects.write"
	ProjectsAll   = "projects.*"

	CalendarRead  = "calendar.read"
	CalendarWrite = "calendar.write"
	CalendarAll   = "calendar.*"

	PTORequest = "pto.request"
	PTOReview  = "pto.review"
	PTOAll     = "pto.*"

	ReportsRead = "reports.read"
	ReportsAll  = "reports.all"
	ReportsAny  = "reports.*"
)

// HasPermission reports whether userPerms grants required.
// An empty required permission is always granted.
func HasPermission(userPerms []string, required string) bool {
	if required == "" {
		return true
	}

	for _, p := range userPerms {
		if p == All || p == required {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, ".*"); ok && strings.HasPrefix(required, prefix+".") {
			return true
		}
	}
	return false
}
