package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/database"
)

// TimeLogQuery selects time logs. A zero To is open-ended and an empty Email
// matches every employee.
type TimeLogQuery struct {
	From  domain.Date
	To    domain.Date
	Email string
}

// TimeLogRepository handles time log persistence. Rows are only ever inserted.
type TimeLogRepository struct {
	db *database.DB
}

// NewTimeLogRepository creates a new time log repository
func NewTimeLogRepository(db *database.DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

// InsertBatch stores all logs in one transaction. Nothing is stored if any insert fails.
func (r *TimeLogRepository) InsertBatch(ctx context.Context, logs []domain.TimeLog) error {
	if len(logs) == 0 {
		return nil
	}

	query := `
		INSERT INTO time_logs (id, email, department, project, date, hours, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		for i := range logs {
			l := &logs[i]
			if l.ID == "" {
				l.ID = uuid.New().String()
			}
			if _, err := tx.ExecContext(ctx, query,
				l.ID, l.Email, l.Department, l.Project, l.Date, l.Hours, l.Notes,
			); err != nil {
				return fmt.Errorf("insert time log %d: %w", i, err)
			}
		}
		return nil
	})
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}

// List returns matching logs ordered by date descending, then email and project
func (r *TimeLogRepository) List(ctx context.Context, q TimeLogQuery) ([]domain.TimeLog, error) {
	query := `
		SELECT id, email, department, project, date, hours, notes, created_at
		FROM time_logs
		WHERE date >= $1`
	args := []interface{}{q.From}

	if !q.To.IsZero() {
		args = append(args, q.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if q.Email != "" {
		args = append(args, q.Email)
		query += fmt.Sprintf(" AND email = $%d", len(args))
	}
	query += " ORDER BY date DESC, email, project"

	logs := []domain.TimeLog{}
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, err
	}
	return logs, nil
}
