package handler

import (
	"net/http"

	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
	"github.com/cloksy/cloksy-backend/pkg/permissions"
)

// Report scopes accepted in ?scope=
const (
	ScopeAll  = "all"
	ScopeMine = "mine"
)

// ReportHandler serves the weekly summary and its downloads
type ReportHandler struct {
	service *service.ReportService
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc *service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: svc, logger: log}
}

// query resolves ?scope= and ?employee= against the caller's permissions.
// Callers with reports.all see everyone unless they ask for scope=mine;
// everyone else only ever sees their own rows.
func query(r *http.Request) (service.ReportQuery, error) {
	email := httputil.GetUserEmail(r.Context())
	canSeeAll := permissions.HasPermission(httputil.GetPermissions(r.Context()), permissions.ReportsAll)
	q := service.ReportQuery{Employee: r.URL.Query().Get("employee")}

	switch r.URL.Query().Get("scope") {
	case "":
		if !canSeeAll {
			q.Scope = email
		}
	case ScopeAll:
		if !canSeeAll {
			return q, errors.Forbidden("missing permission: " + permissions.ReportsAll)
		}
	case ScopeMine:
		q.Scope = email
	default:
		return q, errors.BadRequest("scope must be one of: all mine")
	}
	return q, nil
}

// Weekly returns the weekly summary view model
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	q, err := query(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	summary, err := h.service.Weekly(r.Context(), q)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, summary)
}

// Download returns a handler serving the export called name
func (h *ReportHandler) Download(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := query(r)
		if err != nil {
			httputil.Error(w, err)
			return
		}

		file, err := h.service.Export(r.Context(), q, name)
		if err != nil {
			httputil.Error(w, err)
			return
		}

		if file.ArchiveKey != "" {
			w.Header().Set("X-Archive-Key", file.ArchiveKey)
		}
		httputil.Attachment(w, file.ContentType, file.Name, file.Data)
	}
}
