package ports

import (
	"context"
	"time"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// PropertyRequestFilter selects property requests for the admin list.
type PropertyRequestFilter struct {
	Status    string // optional
	SortField string // one of createdAt, updatedAt, name, status
	SortDesc  bool
}

type PropertyRequestRepository interface {
	Create(ctx context.Context, r *domain.PropertyRequest) (*domain.PropertyRequest, error)
	List(ctx context.Context, filter PropertyRequestFilter) ([]*domain.PropertyRequest, error)
	FindByID(ctx context.Context, id string) (*domain.PropertyRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.PropertyRequestStatus, at time.Time) (*domain.PropertyRequest, error)
	Delete(ctx context.Context, id string) error
}
