package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken is returned when an insert hits the users.email
	// unique constraint.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrPostNotFound is returned when a post lookup matches no row.
	ErrPostNotFound = errors.New("post not found")
)

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (23505) driver error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}
