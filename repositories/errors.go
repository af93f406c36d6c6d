package repositories

import (
	"errors"
	"fmt"

	"abeg-fix/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgFKViolation     = "23503"
)

// translate maps driver errors onto the model error kinds.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", models.ErrDuplicate, what)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", models.ErrValidation, what, pgErr.ConstraintName)
		case pgFKViolation:
			return fmt.Errorf("%w: %s references a missing account", models.ErrNotFound, what)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
