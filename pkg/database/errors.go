package database

import (
	stderrors "errors"
	"strings"

	"github.com/lib/pq"

	"github.com/cloksy/cloksy-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL constraint violation into an AppError.
// Returns nil if err does not wrap a *pq.Error or the code is not mapped.
func MapPQError(err error) *errors.AppError {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case "23514": // check_violation
		return mapCheckConstraint(pqErr)
	case "23505": // unique_violation
		return errors.Conflict(formatUniqueMessage(pqErr))
	case "23503": // foreign_key_violation
		return errors.BadRequest("referenced record does not exist")
	case "23502": // not_null_violation
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{col: "must not be empty"})
	default:
		return nil
	}
}

func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "hours_nonnegative"):
		return errors.Validation(map[string]string{"hours": "must be zero or greater"})
	case strings.Contains(constraint, "project_status_valid"):
		return errors.Validation(map[string]string{"status": "must be one of: active, inactive"})
	case strings.Contains(constraint, "holiday_type_valid"):
		return errors.Validation(map[string]string{"type": "must be one of: holiday, event"})
	case strings.Contains(constraint, "pto_status_valid"):
		return errors.Validation(map[string]string{"status": "must be one of: Pending, Approved, Rejected"})
	case strings.Contains(constraint, "pto_dates_ordered"):
		return errors.Validation(map[string]string{"to_date": "must not be before from_date"})
	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

func formatUniqueMessage(pqErr *pq.Error) string {
	if strings.Contains(pqErr.Constraint, "projects_name_department") {
		return "a project with this name already exists in the department"
	}
	return "a record with these values already exists"
}
