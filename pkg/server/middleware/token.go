package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the iss claim stamped into generated API tokens.
const TokenIssuer = "paperbot"

var bearerRegex = regexp.MustCompile(`^Bearer (\S+)$`)

type contextKey string

const subjectKey contextKey = "subject"

// TokenAuthenticator is middleware that validates HS256 bearer tokens
// on mutating endpoints. An empty secret disables the check and
// requests pass through untouched.
type TokenAuthenticator struct {
	secret []byte
}

// NewTokenAuthenticator creates an authenticator for the given shared
// secret.
func NewTokenAuthenticator(secret string) *TokenAuthenticator {
	return &TokenAuthenticator{secret: []byte(secret)}
}

// Enabled reports whether requests are actually checked.
func (a *TokenAuthenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Middleware returns an HTTP middleware that validates bearer tokens.
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Missing Authorization header"))
			return
		}

		m := bearerRegex.FindStringSubmatch(authHeader)

		if len(m) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Expected a Bearer token"))
			return
		}

		subject, err := a.verify(m[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify parses and validates a token, returning its subject.
func (a *TokenAuthenticator) verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(TokenIssuer),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errors.New("invalid claims format")
	}
	return claims.Subject, nil
}

// SubjectFromContext returns the token subject stored by Middleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}

// GenerateToken mints an HS256 bearer token for the given subject.
func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
