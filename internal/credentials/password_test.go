package credentials

import (
	"strings"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, "password", hash, "stored value must never equal the raw password")
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "bcrypt hashes carry the $2a$ prefix, got %q", hash)
}

func TestHashPasswordEmpty(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("")
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeInvalidCredential), "expected invalid credential error, got %v", err)
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("password")
	require.NoError(t, err)
	h2, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password should differ by salt")
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("badpassword", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("s3cret", "not-a-hash"))
}
