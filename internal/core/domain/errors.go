package domain

import "errors"

// Authentication.
var (
	ErrTokenMissing       = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

// Authorization.
var ErrForbidden = errors.New("access forbidden")

// Lookups. Ownership mismatches are reported with the same NotFound error as
// missing records.
var (
	ErrAdminNotFound           = errors.New("admin not found")
	ErrAgentNotFound           = errors.New("agent not found")
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrContactNotFound         = errors.New("contact message not found")
	ErrPropertyNotFound        = errors.New("property not found")
	ErrPropertyRequestNotFound = errors.New("property request not found")
)

// Uniqueness.
var (
	ErrEmailTaken     = errors.New("email already in use")
	ErrUsernameTaken  = errors.New("username already in use")
	ErrIdentityExists = errors.New("identity already exists")
)

// Invariants.
var ErrLastAdmin = errors.New("cannot delete the last remaining admin")

// ErrValidation is the target for errors.Is on any *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
