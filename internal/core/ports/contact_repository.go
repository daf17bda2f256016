package ports

import (
	"context"
	"time"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// ContactFilter selects a page of contact messages, newest first.
type ContactFilter struct {
	Status string // optional
	Page   int    // 1-based
	Limit  int
}

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*domain.Contact, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus, at time.Time) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
