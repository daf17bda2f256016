package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type agentService struct {
	repo     ports.AgentRepository
	hasher   ports.PasswordHasher
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewAgentService returns an AgentService implementation.
func NewAgentService(
	repo ports.AgentRepository,
	hasher ports.PasswordHasher,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.AgentService {
	return &agentService{
		repo:     repo,
		hasher:   hasher,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *agentService) Create(ctx context.Context, actorID string, in ports.AgentInput) (*domain.Agent, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || in.Password == "" {
		return nil, domain.NewValidationError("username, fullName, email and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if err := s.ensureUnique(ctx, "", email, username); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create agent: hash: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Agent{
		Username:      username,
		FullName:      fullName,
		Email:         email,
		PasswordHash:  hash,
		ProfileImage:  in.ProfileImage,
		Position:      in.Position,
		WhatsApp:      in.WhatsApp,
		Department:    in.Department,
		ContactNumber: in.ContactNumber,
		VCard:         in.VCard,
		Languages:     nonNil(in.Languages),
		AboutMe:       in.AboutMe,
		Address:       in.Address,
		SocialLinks:   nonNil(in.SocialLinks),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	s.log.Info().Str("agent_id", created.ID).Str("actor_id", actorID).Msg("agent created")
	s.notifier.Publish(ctx, actorID, domain.NotifyAgentAdded,
		fmt.Sprintf("New agent %s was added", created.FullName),
		domain.EntityRef{ID: created.ID, Name: created.FullName})
	return created, nil
}

func (s *agentService) Get(ctx context.Context, id string) (*domain.Agent, error) {
	agent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return agent, nil
}

func (s *agentService) List(ctx context.Context) ([]*domain.Agent, error) {
	agents, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

func (s *agentService) Update(ctx context.Context, actorID, id string, in ports.AgentInput) (*domain.Agent, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}

	email := domain.NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if err := s.ensureUnique(ctx, current.ID, email, username); err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}

	upd := ports.AgentUpdate{
		Username:      optional(username),
		FullName:      optional(strings.TrimSpace(in.FullName)),
		Email:         optional(email),
		ProfileImage:  optional(in.ProfileImage),
		Position:      optional(in.Position),
		WhatsApp:      optional(in.WhatsApp),
		Department:    optional(in.Department),
		ContactNumber: optional(in.ContactNumber),
		VCard:         optional(in.VCard),
		Languages:     in.Languages,
		AboutMe:       optional(in.AboutMe),
		Address:       optional(in.Address),
		SocialLinks:   in.SocialLinks,
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLength {
			return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update agent: hash: %w", err)
		}
		upd.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, current.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}

	s.log.Info().Str("agent_id", updated.ID).Str("actor_id", actorID).Msg("agent updated")
	s.notifier.Publish(ctx, actorID, domain.NotifyAgentUpdated,
		fmt.Sprintf("Agent %s was updated", updated.FullName),
		domain.EntityRef{ID: updated.ID, Name: updated.FullName})
	return updated, nil
}

func (s *agentService) Delete(ctx context.Context, actorID, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}

	s.log.Info().Str("agent_id", deleted.ID).Str("actor_id", actorID).Msg("agent deleted")
	s.notifier.Publish(ctx, actorID, domain.NotifyAgentDeleted,
		fmt.Sprintf("Agent %s was deleted", deleted.FullName),
		domain.EntityRef{ID: deleted.ID, Name: deleted.FullName})
	return nil
}

func (s *agentService) UsernameAvailable(ctx context.Context, username, excludeID string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, domain.NewValidationError("username is required")
	}
	existing, err := s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrAgentNotFound):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("check username: %w", err)
	}
	return existing.ID == excludeID, nil
}

func (s *agentService) ensureUnique(ctx context.Context, excludeID, email, username string) error {
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != excludeID:
			return domain.ErrEmailTaken
		case err != nil && !errors.Is(err, domain.ErrAgentNotFound):
			return err
		}
	}
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		switch {
		case err == nil && existing.ID != excludeID:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, domain.ErrAgentNotFound):
			return err
		}
	}
	return nil
}

// optional maps "" to nil so partial updates leave the field untouched.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
