package ports

import (
	"context"
	"time"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// IssuedToken is a signed session token plus the cookie lifetime it was
// issued with. CookieExpires is nil for a browser-session cookie.
type IssuedToken struct {
	Value         string
	ExpiresAt     time.Time
	CookieExpires *time.Time
}

// TokenVerifier resolves a session token to the identity id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AdminSession is the result of a successful admin sign-in.
type AdminSession struct {
	Token IssuedToken
	Admin *domain.Admin
}

// AgentSession is the result of a successful agent sign-in.
type AgentSession struct {
	Token IssuedToken
	Agent *domain.Agent
}

// AuthService defines sign-in, sign-out and password recovery.
type AuthService interface {
	SignInAdmin(ctx context.Context, email, password string, rememberMe bool) (*AdminSession, error)
	SignInAgent(ctx context.Context, email, password string, rememberMe bool) (*AgentSession, error)
	// Logout marks the identity behind token offline. An unusable token is
	// ignored.
	Logout(ctx context.Context, kind domain.IdentityKind, token string)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}
