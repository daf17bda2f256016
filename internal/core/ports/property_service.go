package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// PropertyInput is the full set of editable listing fields.
type PropertyInput struct {
	Title        string
	Description  string
	Price        float64
	Currency     string
	Location     string
	PropertyType string
	ListingType  string
	Bedrooms     int
	Bathrooms    int
	AreaSqft     float64
	Images       []string
	Amenities    []string
	AgentID      string
	Featured     bool
}

type PropertyPage struct {
	Items      []*domain.Property `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

type PropertyService interface {
	Create(ctx context.Context, actorID string, in PropertyInput) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) (*PropertyPage, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Update(ctx context.Context, actorID, id string, in PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, actorID, id string) error
}
