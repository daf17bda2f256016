package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// CreateNotificationInput describes one fan-out. An empty Recipients list
// addresses the creator.
type CreateNotificationInput struct {
	Type       domain.NotificationType
	Message    string
	Recipients []string
	CreatedBy  string
	Entity     *domain.EntityRef
}

// NotificationService is the per-recipient notification store. Every method
// taking recipientID only ever sees that recipient's records.
type NotificationService interface {
	Create(ctx context.Context, in CreateNotificationInput) ([]*domain.Notification, error)
	List(ctx context.Context, recipientID string, limit int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID, id string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, recipientID, id string) error
	ClearAll(ctx context.Context, recipientID string) (int64, error)
}

// Notifier broadcasts a domain event to every admin. It never fails the
// caller.
type Notifier interface {
	Publish(ctx context.Context, actorID string, typ domain.NotificationType, message string, entity domain.EntityRef)
}
