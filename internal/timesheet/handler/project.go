package handler

import (
	"net/http"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Client     string `json:"client" validate:"max=200"`
	Department string `json:"department" validate:"required,max=100"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProjectHandler handles project catalog endpoints
type ProjectHandler struct {
	service *service.ProjectService
	logger  *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(svc *service.ProjectService, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{service: svc, logger: log}
}

// List lists projects, optionally filtered by department and status
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProjectFilter{
		Department: r.URL.Query().Get("department"),
		Status:     domain.ProjectStatus(r.URL.Query().Get("status")),
	}

	projects, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, projects)
}

// Create adds a project to the catalog
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	project := &domain.Project{
		Name:       req.Name,
		Client:     req.Client,
		Department: req.Department,
		Status:     domain.ProjectStatus(req.Status),
	}
	if err := h.service.Create(r.Context(), project); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, project)
}

// Departments lists the departments that own projects
func (h *ProjectHandler) Departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.Departments(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, departments)
}
