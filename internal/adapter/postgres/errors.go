package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// pgCodeErrors maps SQLSTATE codes to the domain error they signal.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"22P02": domain.ErrValidation,    // invalid_text_representation
}

// MapError prefixes err with "<entity> <id>:" and replaces known database
// failures with domain sentinels. id is any printable key: a profile ID, a
// uuid, or a composite pair. Context errors and unmapped codes are wrapped
// unchanged so callers can still match them.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := pgCodeErrors[pgErr.Code]; ok {
			return fmt.Errorf("%s %v: %w", entity, id, sentinel)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
