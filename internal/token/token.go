// Package token issues and verifies the signed session tokens that stand in
// for server-side sessions. Tokens are HS256 JWTs carrying the user id and
// email; the client-held cookie is the only copy.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl, now: time.Now}
}

// Issue mints a signed token for the given subject with issued-at and
// expires-at stamped from the service clock.
func (s *Service) Issue(userID, email string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Email:  email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks shape, signature, and expiry, and returns the embedded claims.
// Every failure mode collapses to ErrInvalidToken; callers never see parser
// internals and Verify never panics.
func (s *Service) Verify(tokenString string) (Claims, error) {
	// A compact JWT is exactly three dot-separated segments. Anything else is
	// rejected before any cryptographic work.
	if strings.Count(tokenString, ".") != 2 {
		return Claims{}, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithStrictDecoding(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
