package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareDisabledPassesThrough(t *testing.T) {
	auth := NewTokenAuthenticator("")
	assert.False(t, auth.Enabled())

	var called bool
	handler := auth.Middleware(okHandler(t, &called))

	req := httptest.NewRequest("POST", "/fetch", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareMissingAuthorization(t *testing.T) {
	auth := NewTokenAuthenticator("secret")
	assert.True(t, auth.Enabled())

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("POST", "/fetch", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Authorization header", rec.Body.String())
}

func TestMiddlewareMalformedAuthorizationHeader(t *testing.T) {
	auth := NewTokenAuthenticator("secret")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"token scheme", `Token token="xyz"`},
		{"basic auth", "Basic cGFwZXJib3Q6aHVudGVyMg=="},
		{"no scheme at all", "just-a-bare-string"},
		{"bearer without token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/fetch", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	auth := NewTokenAuthenticator("secret")

	var subject string
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := GenerateToken("secret", "admin", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/fetch", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", subject)
}

func TestMiddlewareWrongSecret(t *testing.T) {
	auth := NewTokenAuthenticator("secret")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	token, err := GenerateToken("other-secret", "admin", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/fetch", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", rec.Body.String())
}

func TestMiddlewareExpiredToken(t *testing.T) {
	auth := NewTokenAuthenticator("secret")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	token, err := GenerateToken("secret", "admin", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/fetch", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsWrongIssuer(t *testing.T) {
	auth := NewTokenAuthenticator("secret")

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/fetch", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubjectFromContextMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := SubjectFromContext(req.Context())
	assert.False(t, ok)
}
