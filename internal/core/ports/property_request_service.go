package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

type SubmitPropertyRequestInput struct {
	Name             string
	Email            string
	Phone            string
	CountryCode      string
	PropertyID       string
	PropertyTitle    string
	PrivacyConsent   bool
	MarketingConsent bool
}

type PropertyRequestService interface {
	Submit(ctx context.Context, in SubmitPropertyRequestInput) (*domain.PropertyRequest, error)
	// List accepts a sort expression such as "-createdAt" or "name".
	List(ctx context.Context, status, sort string) ([]*domain.PropertyRequest, error)
	Get(ctx context.Context, id string) (*domain.PropertyRequest, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.PropertyRequest, error)
	Delete(ctx context.Context, id string) error
}
