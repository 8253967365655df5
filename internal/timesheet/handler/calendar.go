package handler

import (
	"net/http"

	"github.com/cloksy/cloksy-backend/internal/timesheet/calendar"
	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// AddCalendarEntryRequest is the body of POST /calendar. Holidays take
// dates, events take from and to.
type AddCalendarEntryRequest struct {
	Title string        `json:"title" validate:"required,max=200"`
	Type  string        `json:"type" validate:"required"`
	Dates []domain.Date `json:"dates"`
	From  domain.Date   `json:"from"`
	To    domain.Date   `json:"to"`
}

// CalendarHandler handles company calendar endpoints
type CalendarHandler struct {
	service *service.CalendarService
	logger  *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(svc *service.CalendarService, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{service: svc, logger: log}
}

// Month lists the entries of ?month=YYYY-MM, defaulting to the current month
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Month(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, view)
}

// Add stores a holiday set or an event range
func (h *CalendarHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddCalendarEntryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	kind, err := calendar.ParseKind(req.Type)
	if err != nil {
		httputil.Error(w, errors.Validation(map[string]string{"type": "must be one of: holiday event"}))
		return
	}
	if kind == calendar.KindEvent && (req.From.IsZero() || req.To.IsZero()) {
		httputil.Error(w, errors.Validation(map[string]string{"from": "from and to are required for events"}))
		return
	}

	entries, err := h.service.Add(r.Context(), calendar.Input{
		Title: req.Title,
		Kind:  kind,
		Dates: req.Dates,
		From:  req.From,
		To:    req.To,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, entries)
}
