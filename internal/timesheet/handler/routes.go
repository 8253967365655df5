package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloksy/cloksy-backend/internal/timesheet/export"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/messaging"
	"github.com/cloksy/cloksy-backend/pkg/permissions"
)

// Handlers groups every authenticated timesheet endpoint
type Handlers struct {
	Projects  *ProjectHandler
	Timesheet *TimesheetHandler
	Calendar  *CalendarHandler
	PTO       *PTOHandler
	Reports   *ReportHandler
}

// Mount registers the routes on r. r is expected to already authenticate
// the caller; each route checks its own permission.
func (h *Handlers) Mount(r chi.Router) {
	require := httputil.RequirePermission

	r.Use(correlate)

	r.With(require(permissions.TimesheetRead)).Get("/departments", h.Projects.Departments)

	r.Route("/projects", func(r chi.Router) {
		r.With(require(permissions.ProjectsRead)).Get("/", h.Projects.List)
		r.With(require(permissions.ProjectsWrite)).Post("/", h.Projects.Create)
	})

	r.Route("/timesheet", func(r chi.Router) {
		r.With(require(permissions.TimesheetRead)).Get("/grid", h.Timesheet.Grid)
		r.With(require(permissions.TimesheetWrite)).Post("/", h.Timesheet.Submit)
	})

	r.Route("/calendar", func(r chi.Router) {
		r.With(require(permissions.CalendarRead)).Get("/", h.Calendar.Month)
		r.With(require(permissions.CalendarWrite)).Post("/", h.Calendar.Add)
	})

	r.Route("/pto", func(r chi.Router) {
		r.With(require(permissions.PTORequest)).Post("/", h.PTO.Request)
		r.With(require(permissions.PTORequest)).Get("/mine", h.PTO.Mine)

		r.Group(func(r chi.Router) {
			r.Use(require(permissions.PTOReview))
			r.Get("/pending", h.PTO.Pending)
			r.Put("/{id}/approve", h.PTO.Approve)
			r.Put("/{id}/reject", h.PTO.Reject)
		})
	})

	r.Route("/reports/weekly", func(r chi.Router) {
		r.Use(require(permissions.ReportsRead))
		r.Get("/", h.Reports.Weekly)
		r.Get("/"+export.ProjectSummaryCSVName, h.Reports.Download(export.ProjectSummaryCSVName))
		r.Get("/"+export.ProjectSummaryXLSXName, h.Reports.Download(export.ProjectSummaryXLSXName))
		r.Get("/"+export.DepartmentBreakdownCSVName, h.Reports.Download(export.DepartmentBreakdownCSVName))
		r.Get("/"+export.DepartmentBreakdownXLSXName, h.Reports.Download(export.DepartmentBreakdownXLSXName))
	})
}

// correlate tags published events with the request ID
func correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := messaging.WithCorrelationID(r.Context(), httputil.GetRequestID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
