package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	now := time.Now()
	s := newTestService(now)

	tok, err := s.GenerateAccessToken(42, "ana@example.com")
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
	assert.Equal(t, "42", c.Subject)
	assert.NotEmpty(t, c.ID)
	assert.False(t, s.IsRefreshToken(c))
}

func TestHMACService_Refresh(t *testing.T) {
	s := newTestService(time.Now())

	tok, err := s.GenerateRefreshToken(7)
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.True(t, s.IsRefreshToken(c))
	assert.Empty(t, c.Email)
}

func TestHMACService_Expired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	s := newTestService(issued)
	tok, err := s.GenerateAccessToken(1, "")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_RejectsForeignSignature(t *testing.T) {
	other := NewHMACService("x", "y", time.Minute, time.Minute)
	tok, err := other.GenerateAccessToken(1, "")
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = newTestService(time.Now()).ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RejectsNonPositiveUser(t *testing.T) {
	_, err := newTestService(time.Now()).GenerateAccessToken(0, "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
