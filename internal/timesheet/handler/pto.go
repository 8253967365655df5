package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// RequestPTORequest is the body of POST /pto
type RequestPTORequest struct {
	FromDate domain.Date `json:"from_date"`
	ToDate   domain.Date `json:"to_date"`
	Reason   string      `json:"reason" validate:"max=500"`
}

// PTOHandler handles the PTO approval workflow
type PTOHandler struct {
	service *service.PTOService
	logger  *logger.Logger
}

// NewPTOHandler creates a new PTO handler
func NewPTOHandler(svc *service.PTOService, log *logger.Logger) *PTOHandler {
	return &PTOHandler{service: svc, logger: log}
}

// Request files a request for the caller
func (h *PTOHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req RequestPTORequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	created, err := h.service.Request(r.Context(), httputil.GetUserEmail(r.Context()), req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, created)
}

// Mine lists the caller's requests
func (h *PTOHandler) Mine(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.service.Mine(r.Context(), httputil.GetUserEmail(r.Context()))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, reqs)
}

// Pending lists requests awaiting review
func (h *PTOHandler) Pending(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.service.Pending(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, reqs)
}

// Approve approves request {id}
func (h *PTOHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	req, err := h.service.Approve(r.Context(), id, httputil.GetUserEmail(r.Context()))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, req)
}

// Reject rejects request {id}
func (h *PTOHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := requestID(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	req, err := h.service.Reject(r.Context(), id, httputil.GetUserEmail(r.Context()))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, req)
}

// requestID reads the {id} path parameter, which must be a UUID
func requestID(r *http.Request) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", errors.BadRequest("invalid pto request id")
	}
	return id.String(), nil
}
