package integration

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arxivtools/paperbot/pkg/server/middleware"
)

// Steps that exercise the token middleware's rejection paths.

func (s *StepsContext) iUseATokenSignedWithTheWrongSecret() error {
	token, err := middleware.GenerateToken("not-the-real-secret", "godog", time.Hour)
	if err != nil {
		return err
	}
	s.authToken = token
	return nil
}

func (s *StepsContext) iUseAnExpiredToken() error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    middleware.TokenIssuer,
		Subject:   "godog",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(APISecret))
	if err != nil {
		return err
	}
	s.authToken = token
	return nil
}

func (s *StepsContext) iUseAMalformedToken() error {
	s.authToken = "not-a-valid-jwt"
	return nil
}
