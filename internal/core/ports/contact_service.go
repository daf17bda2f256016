package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

type SubmitContactInput struct {
	Name        string
	Email       string
	Phone       string
	Interest    string
	Message     string
	Preferences domain.ContactPreferences
}

// ContactPage is one page of contact messages plus paging metadata.
type ContactPage struct {
	Items      []*domain.Contact `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

type ContactService interface {
	Submit(ctx context.Context, in SubmitContactInput) (*domain.Contact, error)
	List(ctx context.Context, filter ContactFilter) (*ContactPage, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
