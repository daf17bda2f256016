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

const defaultRequestSort = "-createdAt"

var requestSortFields = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
	"name":      {},
	"status":    {},
}

type propertyRequestService struct {
	repo ports.PropertyRequestRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewPropertyRequestService returns a PropertyRequestService implementation.
func NewPropertyRequestService(repo ports.PropertyRequestRepository, log zerolog.Logger) ports.PropertyRequestService {
	return &propertyRequestService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *propertyRequestService) Submit(ctx context.Context, in ports.SubmitPropertyRequestInput) (*domain.PropertyRequest, error) {
	r := &domain.PropertyRequest{
		Name:             strings.TrimSpace(in.Name),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		CountryCode:      strings.TrimSpace(in.CountryCode),
		PropertyID:       strings.TrimSpace(in.PropertyID),
		PropertyTitle:    strings.TrimSpace(in.PropertyTitle),
		PrivacyConsent:   in.PrivacyConsent,
		MarketingConsent: in.MarketingConsent,
		Status:           domain.RequestNew,
	}
	if r.Name == "" || r.Email == "" || r.Phone == "" || r.PropertyID == "" || r.PropertyTitle == "" {
		return nil, domain.NewValidationError("name, email, phone, propertyId and propertyTitle are required")
	}
	if !r.PrivacyConsent {
		return nil, domain.NewValidationError("privacy consent is required")
	}
	if r.CountryCode == "" {
		r.CountryCode = domain.DefaultCountryCode
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("submit property request: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("property_request").Inc()
	s.log.Info().Str("request_id", created.ID).Str("property_id", created.PropertyID).Msg("property request received")
	return created, nil
}

func (s *propertyRequestService) List(ctx context.Context, status, sort string) ([]*domain.PropertyRequest, error) {
	if status != "" && !domain.PropertyRequestStatus(status).Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}
	filter, err := parseRequestSort(sort)
	if err != nil {
		return nil, err
	}
	filter.Status = status

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list property requests: %w", err)
	}
	return items, nil
}

func (s *propertyRequestService) Get(ctx context.Context, id string) (*domain.PropertyRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property request: %w", err)
	}
	return r, nil
}

func (s *propertyRequestService) UpdateStatus(ctx context.Context, id, status string) (*domain.PropertyRequest, error) {
	st := domain.PropertyRequestStatus(status)
	if !st.Valid() {
		return nil, domain.NewValidationError("status must be one of: new, contacted, closed")
	}
	r, err := s.repo.UpdateStatus(ctx, id, st, s.now())
	if err != nil {
		return nil, fmt.Errorf("update property request status: %w", err)
	}
	return r, nil
}

func (s *propertyRequestService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property request: %w", err)
	}
	return nil
}

// parseRequestSort reads "field" or "-field" (descending).
func parseRequestSort(sort string) (ports.PropertyRequestFilter, error) {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		sort = defaultRequestSort
	}
	field, desc := strings.CutPrefix(sort, "-")
	if _, ok := requestSortFields[field]; !ok {
		return ports.PropertyRequestFilter{}, domain.NewValidationError(fmt.Sprintf("cannot sort by %q", field))
	}
	return ports.PropertyRequestFilter{SortField: field, SortDesc: desc}, nil
}
