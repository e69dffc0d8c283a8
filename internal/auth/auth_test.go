package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetsentry/assetsentry/internal/models"
)

func newTestService() *Service {
	return NewService("test-secret", time.Hour)
}

func TestHashAndCheckPassword(t *testing.T) {
	s := newTestService()

	hash, err := s.HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, s.CheckPassword("admin123", hash))
	assert.False(t, s.CheckPassword("wrong-password", hash))
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestService()
	user := &models.User{
		ID:       "user-1",
		Username: "jsmith",
		Role:     "maintenance_manager",
	}

	token, err := s.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jsmith", claims.Username)
	assert.Equal(t, "maintenance_manager", claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestValidateToken_BearerPrefixAccepted(t *testing.T) {
	s := newTestService()

	token, err := s.GenerateToken(&models.User{ID: "user-1", Username: "jsmith", Role: "maintenance_tech"})
	require.NoError(t, err)

	claims, err := s.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateToken_Invalid(t *testing.T) {
	s := newTestService()

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signed with a different secret.
	other := NewService("other-secret", time.Hour)
	token, err := other.GenerateToken(&models.User{ID: "user-1", Username: "jsmith"})
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	s := NewService("test-secret", -time.Minute)

	token, err := s.GenerateToken(&models.User{ID: "user-1", Username: "jsmith"})
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	s := newTestService()

	first, err := s.GenerateRefreshToken()
	require.NoError(t, err)
	second, err := s.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestExtractTokenFromHeader(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing scheme", "abc123", "", true},
		{"wrong scheme", "Basic abc123", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestValidators(t *testing.T) {
	s := newTestService()

	assert.NoError(t, s.ValidatePassword("longenough"))
	assert.Error(t, s.ValidatePassword("short"))

	assert.NoError(t, s.ValidateEmail("john.smith@assetsentry.com"))
	assert.Error(t, s.ValidateEmail("not-an-email"))

	assert.NoError(t, s.ValidateUsername("jsmith"))
	assert.Error(t, s.ValidateUsername("ab"))
}
