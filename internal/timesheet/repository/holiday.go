package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/database"
)

// HolidayRepository handles company calendar persistence
type HolidayRepository struct {
	db *database.DB
}

// NewHolidayRepository creates a new holiday repository
func NewHolidayRepository(db *database.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// InsertBatch stores every expanded date in one transaction
func (r *HolidayRepository) InsertBatch(ctx context.Context, holidays []domain.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}

	query := `INSERT INTO holidays (id, title, date, type) VALUES ($1, $2, $3, $4)`
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		for i := range holidays {
			h := &holidays[i]
			if h.ID == "" {
				h.ID = uuid.New().String()
			}
			if _, err := tx.ExecContext(ctx, query, h.ID, h.Title, h.Date, h.Type); err != nil {
				return fmt.Errorf("insert holiday %s: %w", h.Date, err)
			}
		}
		return nil
	})
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}

// ListBetween returns entries with from <= date < to, ordered by date
func (r *HolidayRepository) ListBetween(ctx context.Context, from, to domain.Date) ([]domain.Holiday, error) {
	query := `
		SELECT id, title, date, type, created_at
		FROM holidays
		WHERE date >= $1 AND date < $2
		ORDER BY date, title
	`
	holidays := []domain.Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query, from, to); err != nil {
		return nil, err
	}
	return holidays, nil
}
