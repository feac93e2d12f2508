package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Minimum bcrypt cost keeps the test fast.
	hash, err := HashPassword("s3cret-pa55", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pa55", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pa55"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pa55"))
}
