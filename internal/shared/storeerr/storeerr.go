// Package storeerr classifies record store failures the same way for every
// domain and driver, so a lost connection maps to one status no matter which
// repository hit it first.
package storeerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"catalog-backend/internal/infrastructure/surreal"
)

// ErrUnavailable marks a store that could not be reached or did not answer
// in time.
var ErrUnavailable = errors.New("record store unavailable")

// Wrap prefixes err with the failed operation. Connection-level failures of
// either driver additionally wrap ErrUnavailable.
func Wrap(op string, err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// IsUnavailable reports whether err is a connection or timeout failure.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr) ||
		pgconn.Timeout(err) ||
		errors.Is(err, surreal.ErrConnection) ||
		errors.Is(err, ErrUnavailable)
}
