package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// PropertyFilter selects a page of listings, newest first.
type PropertyFilter struct {
	ListingType string // optional: sale or rent
	Featured    *bool  // optional
	AgentID     string // optional
	Page        int    // 1-based
	Limit       int
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// Replace overwrites every mutable field of the stored listing.
	Replace(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id string) (*domain.Property, error)
}
