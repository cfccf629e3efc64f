package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"timevents/internal/domain"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidTextRepr     = "22P02"
	pqNumericOutOfRange   = "22003"
)

// mapError translates driver errors into domain sentinels. Errors it does not
// recognize are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case "users_email_key":
			return domain.ErrDuplicateEmail
		case "users_username_key":
			return domain.ErrDuplicateUsername
		}
		return domain.ErrConflict
	case pqForeignKeyViolation, pqInvalidTextRepr:
		// A dangling reference or a malformed uuid both mean the target does not exist.
		return domain.ErrNotFound
	case pqNumericOutOfRange:
		return fmt.Errorf("%w: value out of range", domain.ErrInvalidInput)
	}
	return err
}

// checkAffected returns ErrNotFound when an UPDATE or DELETE touched no rows.
func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// limitArg returns nil for a non-positive limit so that LIMIT NULL selects all rows.
func limitArg(page domain.PaginationParams) any {
	if page.Limit <= 0 {
		return nil
	}
	return page.Limit
}
