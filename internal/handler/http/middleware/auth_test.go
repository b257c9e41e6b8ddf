package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProtectedServer mounts a trivial handler behind the same verifier and
// auth middleware chain the router uses.
func newProtectedServer(jwtService jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(AuthRequired(jwtService))
		r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestAuthRequired_ValidToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	token, _, err := svc.GenerateAccessToken("worker@example.com", "employee", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newProtectedServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	newProtectedServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "15m")
	token, _, err := svc.GenerateAccessToken("worker@example.com", "employee", false)
	require.NoError(t, err)

	server := newProtectedServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
