package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

const (
	defaultSessionTTL = 24 * time.Hour
	rememberMeTTL     = 30 * 24 * time.Hour
)

// TokenService issues and verifies HS256 session tokens. Tokens carry only the
// identity id; roles are always re-read from storage.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, sessionTTL time.Duration) *TokenService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for issuance and verification.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for identityID. With rememberMe the token lives 30 days
// and the cookie gets the same explicit expiry; otherwise the token uses the
// session TTL and the cookie is left without an expiry.
func (s *TokenService) Issue(identityID string, rememberMe bool) (ports.IssuedToken, error) {
	now := s.now()

	ttl := s.sessionTTL
	var cookieExpires *time.Time
	if rememberMe {
		ttl = rememberMeTTL
		exp := now.Add(rememberMeTTL)
		cookieExpires = &exp
	}

	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   identityID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return ports.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return ports.IssuedToken{Value: signed, ExpiresAt: expiresAt, CookieExpires: cookieExpires}, nil
}

// Verify returns the identity id bound to token. It fails with
// domain.ErrTokenExpired for a well-formed token past its expiry and with
// domain.ErrTokenInvalid for anything else: malformed, forged, or naming an
// unknown or foreign algorithm.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		default:
			return "", domain.ErrTokenInvalid
		}
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
