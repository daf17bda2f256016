package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type propertyService struct {
	repo     ports.PropertyRepository
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewPropertyService returns a PropertyService implementation.
func NewPropertyService(repo ports.PropertyRepository, notifier ports.Notifier, log zerolog.Logger) ports.PropertyService {
	return &propertyService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *propertyService) Create(ctx context.Context, actorID string, in ports.PropertyInput) (*domain.Property, error) {
	p := &domain.Property{}
	if err := applyPropertyInput(p, in); err != nil {
		return nil, err
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.log.Info().Str("property_id", created.ID).Str("actor_id", actorID).Msg("property created")
	s.notifier.Publish(ctx, actorID, domain.NotifyPropertyAdded,
		fmt.Sprintf("New property %q was added", created.Title),
		domain.EntityRef{ID: created.ID, Name: created.Title})
	return created, nil
}

func (s *propertyService) List(ctx context.Context, filter ports.PropertyFilter) (*ports.PropertyPage, error) {
	if filter.ListingType != "" && !validListingType(filter.ListingType) {
		return nil, domain.NewValidationError("listingType must be one of: sale, rent")
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return &ports.PropertyPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *propertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// Update replaces every editable field of the listing.
func (s *propertyService) Update(ctx context.Context, actorID, id string, in ports.PropertyInput) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	if err := applyPropertyInput(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()

	updated, err := s.repo.Replace(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}

	s.log.Info().Str("property_id", updated.ID).Str("actor_id", actorID).Msg("property updated")
	s.notifier.Publish(ctx, actorID, domain.NotifyPropertyUpdated,
		fmt.Sprintf("Property %q was updated", updated.Title),
		domain.EntityRef{ID: updated.ID, Name: updated.Title})
	return updated, nil
}

func (s *propertyService) Delete(ctx context.Context, actorID, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	s.log.Info().Str("property_id", deleted.ID).Str("actor_id", actorID).Msg("property deleted")
	s.notifier.Publish(ctx, actorID, domain.NotifyPropertyDeleted,
		fmt.Sprintf("Property %q was deleted", deleted.Title),
		domain.EntityRef{ID: deleted.ID, Name: deleted.Title})
	return nil
}

func applyPropertyInput(p *domain.Property, in ports.PropertyInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.NewValidationError("title is required")
	}
	if in.Price < 0 || in.Bedrooms < 0 || in.Bathrooms < 0 || in.AreaSqft < 0 {
		return domain.NewValidationError("price, bedrooms, bathrooms and area cannot be negative")
	}
	listing := in.ListingType
	if listing == "" {
		listing = domain.ListingSale
	}
	if !validListingType(listing) {
		return domain.NewValidationError("listingType must be one of: sale, rent")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	p.Title = title
	p.Description = in.Description
	p.Price = in.Price
	p.Currency = currency
	p.Location = strings.TrimSpace(in.Location)
	p.PropertyType = in.PropertyType
	p.ListingType = listing
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.AreaSqft = in.AreaSqft
	p.Images = nonNil(in.Images)
	p.Amenities = nonNil(in.Amenities)
	p.AgentID = in.AgentID
	p.Featured = in.Featured
	return nil
}

func validListingType(t string) bool {
	return t == domain.ListingSale || t == domain.ListingRent
}
