package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(accessTTL, refreshTTL time.Duration) *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", accessTTL, refreshTTL)
}

func TestJWTRoundTrip(t *testing.T) {
	m := newTestJWT(time.Minute, time.Hour)

	access, aexp, err := m.GenerateAccessToken("acct-1", 3)
	require.NoError(t, err)
	assert.True(t, aexp.After(time.Now()))

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, int64(3), claims.Generation)

	refresh, rexp, err := m.GenerateRefreshToken("acct-1", 3)
	require.NoError(t, err)
	assert.True(t, rexp.After(aexp))

	rclaims, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", rclaims.AccountID)
}

func TestJWTExpired(t *testing.T) {
	m := newTestJWT(-time.Minute, -time.Minute)

	access, _, err := m.GenerateAccessToken("acct-1", 1)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTWrongSecretFamily(t *testing.T) {
	m := newTestJWT(time.Minute, time.Hour)

	// A refresh token must not validate as an access token and vice versa.
	refresh, _, err := m.GenerateRefreshToken("acct-1", 1)
	require.NoError(t, err)
	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	access, _, err := m.GenerateAccessToken("acct-1", 1)
	require.NoError(t, err)
	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTGarbage(t *testing.T) {
	m := newTestJWT(time.Minute, time.Hour)

	_, err := m.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
