// Package credentials hashes and verifies user passwords.
package credentials

import (
	"warbler/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt hash of raw. An empty raw
// password is rejected before any persistence attempt.
func HashPassword(raw string) (string, error) {
	if raw == "" {
		return "", models.NewInvalidCredentialError("Password must be non-empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether raw matches the stored bcrypt hash.
// A mismatch is a normal false result, never an error.
func CheckPassword(raw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) == nil
}
