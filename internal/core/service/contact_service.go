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

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type contactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewContactService returns a ContactService implementation.
func NewContactService(repo ports.ContactRepository, log zerolog.Logger) ports.ContactService {
	return &contactService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a public contact message with status "new". Phone is optional.
func (s *contactService) Submit(ctx context.Context, in ports.SubmitContactInput) (*domain.Contact, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return nil, domain.NewValidationError("name, email and message are required")
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Contact{
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		Interest:    strings.TrimSpace(in.Interest),
		Message:     message,
		Preferences: in.Preferences,
		Status:      domain.ContactNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("submit contact: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("contact").Inc()
	s.log.Info().Str("contact_id", created.ID).Msg("contact message received")
	return created, nil
}

func (s *contactService) List(ctx context.Context, filter ports.ContactFilter) (*ports.ContactPage, error) {
	if filter.Status != "" && !domain.ContactStatus(filter.Status).Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return &ports.ContactPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error) {
	st := domain.ContactStatus(status)
	if !st.Valid() {
		return nil, domain.NewValidationError("status must be one of: new, in-progress, resolved")
	}
	c, err := s.repo.UpdateStatus(ctx, id, st, s.now())
	if err != nil {
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
