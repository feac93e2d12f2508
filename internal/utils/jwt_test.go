package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	sid, err := NewSessionID()
	require.NoError(t, err)
	require.Len(t, sid, 64)

	access, err := NewAccessToken("test-secret", 42, "admin", sid, 1)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), access.Exp, 5*time.Second)

	claims, err := ParseAccessToken("test-secret", access.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, sid, claims.SessionID)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	access, err := NewAccessToken("secret-a", 1, "user", "abc123", 1)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret-b", access.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken("secret", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSessionIDUnique(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
