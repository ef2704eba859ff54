package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/willowgate/memorial/internal/memorial/domain"
)

// DefaultSessionTTL is the fixed validity of a session token.
const DefaultSessionTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, garbage
// input, expiry. Callers distinguish it from "no token supplied" themselves.
var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed session tokens carried in the
// auth cookie. Tokens are stateless: identity claims plus an expiry, signed
// with a single process-wide HMAC secret.
type TokenService struct {
	Secret []byte
	TTL    time.Duration

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Issue signs a token carrying the user's identity claims, expiring a fixed
// interval from issuance.
func (s *TokenService) Issue(u domain.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
// All failure modes collapse to ErrInvalidToken; nothing here panics.
func (s *TokenService) Verify(raw string) (domain.SessionClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return domain.SessionClaims{}, ErrInvalidToken
	}

	return domain.SessionClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   domain.Role(claims.Role),
	}, nil
}
