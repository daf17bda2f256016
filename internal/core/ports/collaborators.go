package ports

import (
	"context"
	"time"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// ResetTokenStore keeps at most one live password-reset token hash per
// identity. Save replaces any previous token for the same identity.
type ResetTokenStore interface {
	Save(ctx context.Context, identityID, tokenHash string, ttl time.Duration) error
	// Lookup returns domain.ErrResetTokenInvalid when the hash is unknown or expired.
	Lookup(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, identityID string) error
}
