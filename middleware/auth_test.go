package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T, roles ...models.UserRole) http.Handler {
	t.Helper()
	var inner http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if len(roles) > 0 {
		inner = Authorize(roles...)(inner)
	}
	return Authenticate(testSecret)(inner)
}

func TestAuthenticateRejectsMissingOrBadTokens(t *testing.T) {
	handler := protectedHandler(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong key", header: "Bearer " + func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
			signed, _ := token.SignedString([]byte("other-secret"))
			return signed
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	handler := protectedHandler(t)
	token := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"role":    string(models.RoleAdmin),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizeChecksRole(t *testing.T) {
	tests := []struct {
		name    string
		role    models.UserRole
		allowed []models.UserRole
		want    int
	}{
		{name: "admin passes admin gate", role: models.RoleAdmin, allowed: []models.UserRole{models.RoleAdmin}, want: http.StatusOK},
		{name: "scorer blocked from admin gate", role: models.RoleScorer, allowed: []models.UserRole{models.RoleAdmin}, want: http.StatusForbidden},
		{name: "scorer passes scorer gate", role: models.RoleScorer, allowed: []models.UserRole{models.RoleAdmin, models.RoleScorer}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := protectedHandler(t, tt.allowed...)
			token := signToken(t, jwt.MapClaims{
				"user_id": 3,
				"role":    string(tt.role),
				"exp":     time.Now().Add(time.Hour).Unix(),
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestClaimsHelpers(t *testing.T) {
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, 42, id)

		role, err := GetUserRoleFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, models.RoleScorer, role)

		w.WriteHeader(http.StatusOK)
	}))

	token := signToken(t, jwt.MapClaims{
		"user_id": 42,
		"role":    string(models.RoleScorer),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
