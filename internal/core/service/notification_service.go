package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateluxy/backoffice-api/internal/api/metrics"
	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// MaxNotificationList caps how many notifications a single list call returns.
const MaxNotificationList = 50

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create stores one unread notification per distinct recipient.
func (s *notificationService) Create(ctx context.Context, in ports.CreateNotificationInput) ([]*domain.Notification, error) {
	message := strings.TrimSpace(in.Message)
	switch {
	case in.Type == "" || message == "":
		return nil, domain.NewValidationError("type and message are required")
	case !in.Type.Valid():
		return nil, domain.NewValidationError(fmt.Sprintf("unknown notification type %q", in.Type))
	case in.CreatedBy == "":
		return nil, domain.NewValidationError("creator is required")
	}

	recipients := dedupeRecipients(in.Recipients)
	if len(recipients) == 0 {
		recipients = []string{in.CreatedBy}
	}

	now := s.now()
	items := make([]*domain.Notification, 0, len(recipients))
	for _, r := range recipients {
		n := &domain.Notification{
			Recipient: r,
			Type:      in.Type,
			Message:   message,
			CreatedBy: in.CreatedBy,
			CreatedAt: now,
		}
		if in.Entity != nil {
			n.EntityID = in.Entity.ID
			n.EntityName = in.Entity.Name
		}
		items = append(items, n)
	}

	created, err := s.repo.InsertMany(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("create notifications: %w", err)
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(string(in.Type)).Add(float64(len(created)))
	s.log.Debug().
		Str("type", string(in.Type)).
		Int("recipients", len(created)).
		Str("created_by", in.CreatedBy).
		Msg("notifications created")

	return created, nil
}

// List returns the recipient's newest notifications. limit is clamped to
// 1..MaxNotificationList; zero or negative means the maximum.
func (s *notificationService) List(ctx context.Context, recipientID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > MaxNotificationList {
		limit = MaxNotificationList
	}
	items, err := s.repo.ListByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	n, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, recipientID, id string) (*domain.Notification, error) {
	n, err := s.repo.MarkRead(ctx, recipientID, id)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	metrics.NotificationOpsTotal.WithLabelValues("mark_read").Inc()
	return n, nil
}

// MarkAllRead returns how many notifications changed state; repeating the call
// returns 0.
func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	metrics.NotificationOpsTotal.WithLabelValues("mark_all_read").Inc()
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, recipientID, id string) error {
	if err := s.repo.Delete(ctx, recipientID, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	metrics.NotificationOpsTotal.WithLabelValues("delete").Inc()
	return nil
}

func (s *notificationService) ClearAll(ctx context.Context, recipientID string) (int64, error) {
	n, err := s.repo.DeleteAll(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}
	metrics.NotificationOpsTotal.WithLabelValues("clear_all").Inc()
	return n, nil
}

func dedupeRecipients(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AdminLister yields the ids of every admin.
type AdminLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type adminNotifier struct {
	admins        AdminLister
	notifications ports.NotificationService
	log           zerolog.Logger
}

// NewAdminNotifier returns a Notifier that addresses every admin.
func NewAdminNotifier(admins AdminLister, notifications ports.NotificationService, log zerolog.Logger) ports.Notifier {
	return &adminNotifier{admins: admins, notifications: notifications, log: log}
}

// Publish is best effort: failures are logged and counted, never returned.
func (n *adminNotifier) Publish(ctx context.Context, actorID string, typ domain.NotificationType, message string, entity domain.EntityRef) {
	ids, err := n.admins.ListIDs(ctx)
	if err != nil {
		metrics.NotifyFailuresTotal.Inc()
		n.log.Warn().Err(err).Str("type", string(typ)).Msg("notify: list admins failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	ref := entity
	_, err = n.notifications.Create(ctx, ports.CreateNotificationInput{
		Type:       typ,
		Message:    message,
		Recipients: ids,
		CreatedBy:  actorID,
		Entity:     &ref,
	})
	if err != nil {
		metrics.NotifyFailuresTotal.Inc()
		n.log.Warn().Err(err).Str("type", string(typ)).Str("entity_id", entity.ID).Msg("notify: create failed")
	}
}
