package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campuscert/internal/domain"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint breach on the
// named constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// mapStorageErr translates connection-class failures and timeouts into
// domain.ErrStorageUnavailable so callers can retry with backoff. Everything
// else passes through untouched.
func mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		// 08: connection exception, 53: insufficient resources,
		// 57: operator intervention (e.g. shutdown).
		case "08", "53", "57":
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
	}
	return err
}
