package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// CreateAdminInput is the service DTO for POST /api/admins.
type CreateAdminInput struct {
	Username     string
	FullName     string
	Email        string
	Password     string
	Role         string
	ProfileImage string
	Phone        string
}

// UpdateAdminInput carries optional changes; nil fields are left unchanged.
type UpdateAdminInput struct {
	Username     *string
	FullName     *string
	Email        *string
	Password     *string
	Role         *string
	ProfileImage *string
	Phone        *string
}

// AdminService defines admin account management. actorID is always the
// authenticated identity performing the operation.
type AdminService interface {
	Create(ctx context.Context, actorID string, in CreateAdminInput) (*domain.Admin, error)
	Get(ctx context.Context, id string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	Update(ctx context.Context, actorID, targetID string, in UpdateAdminInput) (*domain.Admin, error)
	Delete(ctx context.Context, actorID, targetID string) error
	// UsernameAvailable ignores the record identified by excludeID.
	UsernameAvailable(ctx context.Context, username, excludeID string) (bool, error)
	// Role returns the stored role of an admin.
	Role(ctx context.Context, id string) (string, error)
}
