package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// NotificationRepository persists notifications. Every read and write is
// scoped to a recipient; a record owned by someone else behaves exactly like a
// missing one.
type NotificationRepository interface {
	InsertMany(ctx context.Context, items []*domain.Notification) ([]*domain.Notification, error)
	// ListByRecipient returns the newest limit records, with CreatedByName resolved.
	ListByRecipient(ctx context.Context, recipient string, limit int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, recipient string) (int64, error)
	MarkRead(ctx context.Context, recipient, id string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
	Delete(ctx context.Context, recipient, id string) error
	DeleteAll(ctx context.Context, recipient string) (int64, error)
}
