package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rewear/internal/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// mapError translates driver errors into domain errors. Unknown errors pass through.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		switch pqErr.Constraint {
		case "ux_swap_requests_one_accepted":
			return domain.NewConflictError("another request for this item is already accepted")
		case "ux_users_username":
			return domain.NewConflictError("username is already taken")
		case "ux_users_email":
			return domain.NewConflictError("email is already registered")
		}
		return domain.NewConflictError("duplicate value violates " + pqErr.Constraint)
	case pgForeignKeyViolation:
		return domain.NewConflictError("operation violates reference " + pqErr.Constraint)
	case pgCheckViolation, pgNotNullViolation:
		field := pqErr.Column
		if field == "" {
			field = pqErr.Constraint
		}
		return domain.NewValidationError(field, pqErr.Message)
	case pgSerializationFailure, pgDeadlockDetected:
		return domain.NewConflictError("concurrent update, please retry")
	}
	return err
}

// notFound maps sql.ErrNoRows to a NotFoundError for entity id.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}
	return mapError(err)
}
