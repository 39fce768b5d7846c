package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateRoundTrip(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour)
	user := &models.User{ID: 42, Role: models.RoleOrganizer}

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	var gotUserID int
	var gotRole models.UserRole
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetUserRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, gotUserID)
	assert.Equal(t, models.RoleOrganizer, gotRole)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour)
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	issuer := NewAuth("secret-a", time.Hour)
	verifier := NewAuth("secret-b", time.Hour)

	token, err := issuer.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	handler := verifier.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	auth := NewAuth("test-secret", -time.Minute)

	token, err := auth.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizeRoles(t *testing.T) {
	auth := NewAuth("test-secret", time.Hour)

	run := func(role models.UserRole, allowed ...models.UserRole) int {
		token, err := auth.GenerateToken(&models.User{ID: 7, Role: role})
		require.NoError(t, err)

		handler := auth.Authenticate(auth.Authorize(allowed...)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(models.RoleAdmin, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, run(models.RoleOrganizer, models.RoleAdmin, models.RoleOrganizer))
	assert.Equal(t, http.StatusForbidden, run(models.RoleDelegate, models.RoleAdmin))
}
