package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE the server reports when a unique constraint
// rejects a row.
const pgUniqueViolation = "23505"

// IsNoRowsError reports whether err means the query matched no rows.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique-constraint violation from
// PostgreSQL. The constraint is the authority for uniqueness rules; callers are
// expected to translate this into their own conflict errors.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
