package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scry-study/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// MapError maps a driver error to the store error taxonomy, wrapping the
// original error. Errors without a specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case pgCheckViolation:
			return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case pgNotNullViolation:
			return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return fmt.Errorf("%w: check constraint violation: %v", store.ErrInvalidEntity, err)
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%w: not null violation: %v", store.ErrInvalidEntity, err)
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: constraint violation: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}

// checkRowsAffected returns notFound when result reports zero affected rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
