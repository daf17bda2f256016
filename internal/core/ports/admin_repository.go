package ports

import (
	"context"
	"time"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// AdminUpdate carries the fields to overwrite; nil fields are left unchanged.
type AdminUpdate struct {
	Username     *string
	FullName     *string
	Email        *string
	PasswordHash *string
	Role         *string
	ProfileImage *string
	Phone        *string
}

// AdminRepository is the credential store for admins.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, upd AdminUpdate) (*domain.Admin, error)
	// Delete removes the admin and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Admin, error)
	// Restore re-inserts a previously deleted record under its original id.
	Restore(ctx context.Context, admin *domain.Admin) error
	Count(ctx context.Context) (int64, error)
	SetPresence(ctx context.Context, id string, online bool, at time.Time) error
}
