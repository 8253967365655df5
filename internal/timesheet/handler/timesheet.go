package handler

import (
	"net/http"

	"github.com/cloksy/cloksy-backend/internal/timesheet/collector"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// SubmitTimesheetRequest is the body of POST /timesheet. Hours are keyed by
// YYYY-MM-DD.
type SubmitTimesheetRequest struct {
	Department string         `json:"department" validate:"required"`
	Rows       collector.Grid `json:"rows" validate:"required"`
}

// TimesheetHandler handles the weekly entry grid
type TimesheetHandler struct {
	service *service.TimesheetService
	logger  *logger.Logger
}

// NewTimesheetHandler creates a new timesheet handler
func NewTimesheetHandler(svc *service.TimesheetService, log *logger.Logger) *TimesheetHandler {
	return &TimesheetHandler{service: svc, logger: log}
}

// Grid returns the current week's empty grid for ?department=
func (h *TimesheetHandler) Grid(w http.ResponseWriter, r *http.Request) {
	grid, err := h.service.Grid(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, grid)
}

// Submit stores the caller's grid
func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitTimesheetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	result, err := h.service.Submit(r.Context(), httputil.GetUserEmail(r.Context()), req.Department, req.Rows)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, result)
}
