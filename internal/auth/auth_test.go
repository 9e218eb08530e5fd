package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

func newManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewTokenManagerRequiresSecrets(t *testing.T) {
	_, err := NewTokenManager("", "x", time.Minute, time.Minute)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager(t)
	tok, err := m.AccessToken("u1", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ParseAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newManager(t)
	access, err := m.AccessToken("u1", domain.RoleUser)
	require.NoError(t, err)
	refresh, err := m.RefreshToken("u1")
	require.NoError(t, err)

	_, err = m.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ID)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := newManager(t)
	tok, err := m.RefreshToken("u1")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.ParseRefresh(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := newManager(t).ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", h)
	assert.True(t, CheckPassword(h, "s3cret"))
	assert.False(t, CheckPassword(h, "wrong"))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		actual, required domain.Role
		want             Decision
	}{
		{domain.RoleAdmin, domain.RoleAdmin, Allow},
		{domain.RoleUser, domain.RoleAdmin, Deny},
		{domain.RoleGovt, domain.RoleAdmin, Deny},
		{"", domain.RoleAdmin, Deny},
		{"root", "root", Deny},
	}
	for _, tt := range tests {
		t.Run(string(tt.actual)+"->"+string(tt.required), func(t *testing.T) {
			assert.Equal(t, tt.want, RequireRole(tt.actual, tt.required))
		})
	}
}
