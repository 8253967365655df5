package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/database"
	"github.com/cloksy/cloksy-backend/pkg/errors"
)

const ptoColumns = `id, email, from_date, to_date, reason, status, submitted_on, reviewed_by, reviewed_at`

// PTORepository handles PTO request persistence
type PTORepository struct {
	db *database.DB
}

// NewPTORepository creates a new PTO repository
func NewPTORepository(db *database.DB) *PTORepository {
	return &PTORepository{db: db}
}

// Create inserts a new request. Status is forced to Pending.
func (r *PTORepository) Create(ctx context.Context, req *domain.PTORequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = domain.PTOPending

	query := `
		INSERT INTO pto_requests (id, email, from_date, to_date, reason, status, submitted_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Email, req.FromDate, req.ToDate, req.Reason, req.Status, req.SubmittedOn,
	)
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}

// GetByID gets a request by ID
func (r *PTORepository) GetByID(ctx context.Context, id string) (*domain.PTORequest, error) {
	var req domain.PTORequest
	err := r.db.GetContext(ctx, &req, `SELECT `+ptoColumns+` FROM pto_requests WHERE id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("pto request")
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending returns pending requests, oldest submission first
func (r *PTORepository) ListPending(ctx context.Context) ([]domain.PTORequest, error) {
	query := `SELECT ` + ptoColumns + ` FROM pto_requests WHERE status = 'Pending' ORDER BY submitted_on, from_date`

	reqs := []domain.PTORequest{}
	if err := r.db.SelectContext(ctx, &reqs, query); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListByEmail returns one employee's requests, newest first
func (r *PTORepository) ListByEmail(ctx context.Context, email string) ([]domain.PTORequest, error) {
	query := `SELECT ` + ptoColumns + ` FROM pto_requests WHERE email = $1 ORDER BY submitted_on DESC, from_date DESC`

	reqs := []domain.PTORequest{}
	if err := r.db.SelectContext(ctx, &reqs, query, email); err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateStatus moves a Pending request to next. The update only matches
// Pending rows, so of two concurrent decisions exactly one succeeds; the other
// gets a Conflict and the stored status is left as the first decision set it.
func (r *PTORepository) UpdateStatus(ctx context.Context, id string, next domain.PTOStatus, reviewer string) (*domain.PTORequest, error) {
	if !domain.PTOPending.CanTransitionTo(next) {
		return nil, errors.BadRequest(fmt.Sprintf("cannot move a request to %q", next))
	}

	query := `
		UPDATE pto_requests
		SET status = $2, reviewed_by = $3, reviewed_at = NOW()
		WHERE id = $1 AND status = 'Pending'
		RETURNING ` + ptoColumns

	var req domain.PTORequest
	err := r.db.GetContext(ctx, &req, query, id, next, reviewer)
	if err == nil {
		return &req, nil
	}
	if !stderrors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, errors.Conflict(fmt.Sprintf("pto request is already %s", current.Status))
}
