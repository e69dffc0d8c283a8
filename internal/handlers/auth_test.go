package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetsentry/assetsentry/internal/auth"
	"github.com/assetsentry/assetsentry/internal/middleware"
	"github.com/assetsentry/assetsentry/internal/models"
	"github.com/assetsentry/assetsentry/internal/storage"
)

func newAuthTestHandler(t *testing.T) (*AuthHandler, *storage.MemStorage, *models.User) {
	t.Helper()

	store := storage.NewMemStorage()
	authService := auth.NewService("test-secret", time.Hour)

	hash, err := authService.HashPassword("securepass123")
	require.NoError(t, err)
	user, err := store.CreateUser(context.Background(), models.UserInsert{
		Username:     "jsmith",
		PasswordHash: hash,
		Name:         "John Smith",
		Role:         "maintenance_manager",
		Email:        "john.smith@assetsentry.com",
	})
	require.NoError(t, err)

	return NewAuthHandler(authService, store), store, user
}

func requestWithClaims(method, path string, body interface{}, user *models.User) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	claims := &models.Claims{UserID: user.ID, Username: user.Username, Role: user.Role}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

func TestGetProfile(t *testing.T) {
	h, _, user := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetProfile(rec, requestWithClaims(http.MethodGet, "/api/auth/profile", nil, user))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "John Smith", got.Name)
	// Password hash never leaves the API.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetProfile_NoClaims(t *testing.T) {
	h, _, _ := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	h, store, user := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, requestWithClaims(http.MethodPut, "/api/auth/profile", map[string]string{
		"name":  "John A. Smith",
		"email": "john.a.smith@assetsentry.com",
	}, user))

	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "John A. Smith", updated.Name)
	assert.Equal(t, "john.a.smith@assetsentry.com", updated.Email)
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	h, store, user := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, requestWithClaims(http.MethodPut, "/api/auth/profile", map[string]string{
		"email": "not-an-email",
	}, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	unchanged, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, unchanged.Email)
}

func TestChangePassword(t *testing.T) {
	h, store, user := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, requestWithClaims(http.MethodPost, "/api/auth/password", map[string]string{
		"current_password": "securepass123",
		"new_password":     "evenbetterpass",
	}, user))

	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	authService := auth.NewService("test-secret", time.Hour)
	assert.True(t, authService.CheckPassword("evenbetterpass", updated.PasswordHash))
	assert.False(t, authService.CheckPassword("securepass123", updated.PasswordHash))
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	h, _, user := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, requestWithClaims(http.MethodPost, "/api/auth/password", map[string]string{
		"current_password": "wrong-password",
		"new_password":     "evenbetterpass",
	}, user))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_TooShort(t *testing.T) {
	h, _, user := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, requestWithClaims(http.MethodPost, "/api/auth/password", map[string]string{
		"current_password": "securepass123",
		"new_password":     "short",
	}, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
