package repository

import (
	"strings"
)

// isIntegrityViolation checks if a DB error is a uniqueness or not-null
// constraint breach. Matched on message text so both the PostgreSQL
// driver (SQLSTATE 23505/23502) and the sqlite driver used in tests are
// covered.
func isIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "not null constraint") ||
		strings.Contains(msg, "not-null constraint") ||
		strings.Contains(msg, "23502")
}
