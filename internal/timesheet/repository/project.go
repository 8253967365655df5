package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/database"
)

// ProjectFilter narrows a project listing. Empty fields match everything.
type ProjectFilter struct {
	Department string
	Status     domain.ProjectStatus
}

// ProjectRepository handles project catalog persistence
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project, assigning an ID when empty
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}

	query := `
		INSERT INTO projects (id, name, client, department, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.ID, p.Name, p.Client, p.Department, p.Status).
		Scan(&p.CreatedAt)
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}

// List returns projects ordered by department and name
func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT id, name, client, department, status, created_at FROM projects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY department, name"

	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, err
	}
	return projects, nil
}

// ActiveNames returns the names of a department's active projects, sorted
func (r *ProjectRepository) ActiveNames(ctx context.Context, department string) ([]string, error) {
	query := `SELECT name FROM projects WHERE department = $1 AND status = 'active' ORDER BY name`

	names := []string{}
	if err := r.db.SelectContext(ctx, &names, query, department); err != nil {
		return nil, err
	}
	return names, nil
}

// Departments returns the distinct departments that have projects
func (r *ProjectRepository) Departments(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT department FROM projects ORDER BY department`

	departments := []string{}
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, err
	}
	return departments, nil
}
