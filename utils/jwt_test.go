package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "unit-test-secret")
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "alice@example.com", true, TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.Admin)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken(1, "alice@example.com", false, TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "secret123"))
}

func TestSanitizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain text", Sanitize("plain text"))
}

func TestTokenDenylist(t *testing.T) {
	DenylistToken("revoked-token", time.Now().Add(time.Hour))
	assert.True(t, IsTokenDenied("revoked-token"))
	assert.False(t, IsTokenDenied("other-token"))

	// entries disappear once the token would have expired anyway
	DenylistToken("stale-token", time.Now().Add(-time.Second))
	assert.False(t, IsTokenDenied("stale-token"))
}
