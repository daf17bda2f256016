package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super Admin"
)

// IdentityKind distinguishes the two credential classes. It selects the cookie
// name and the collection an identity id is resolved against; it is never
// embedded in a token.
type IdentityKind string

const (
	KindAdmin IdentityKind = "admin"
	KindAgent IdentityKind = "agent"
)

// Presence is the best-effort online signal refreshed at sign-in.
type Presence struct {
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
	IsOnline     bool       `json:"isOnline"`
}

// Admin is a back-office operator.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage"`
	Phone        string    `json:"phone"`
	Presence
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Admin) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }

// Agent is a sales agent listed on the public site.
type Agent struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	FullName      string   `json:"fullName"`
	Email         string   `json:"email"`
	PasswordHash  string   `json:"-"`
	ProfileImage  string   `json:"profileImage"`
	Position      string   `json:"position"`
	WhatsApp      string   `json:"whatsapp"`
	Department    string   `json:"department"`
	ContactNumber string   `json:"contactNumber"`
	VCard         string   `json:"vcard"`
	Languages     []string `json:"languages"`
	AboutMe       string   `json:"aboutMe"`
	Address       string   `json:"address"`
	SocialLinks   []string `json:"socialLinks"`
	Presence
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the admin roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// NormalizeEmail lower-cases and trims an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthorizeAdminChange decides whether actor may modify or delete the admin
// identified by targetID. A Super Admin may act on any record; a plain Admin
// only on its own, and never on roles.
func AuthorizeAdminChange(actor *Admin, targetID string, changesRole bool) error {
	if actor == nil {
		return ErrForbidden
	}
	if actor.IsSuperAdmin() {
		return nil
	}
	if actor.ID != targetID || changesRole {
		return ErrForbidden
	}
	return nil
}
