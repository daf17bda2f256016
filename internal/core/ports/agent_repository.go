package ports

import (
	"context"
	"time"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// AgentUpdate carries the fields to overwrite; nil fields are left unchanged.
type AgentUpdate struct {
	Username      *string
	FullName      *string
	Email         *string
	PasswordHash  *string
	ProfileImage  *string
	Position      *string
	WhatsApp      *string
	Department    *string
	ContactNumber *string
	VCard         *string
	Languages     []string
	AboutMe       *string
	Address       *string
	SocialLinks   []string
}

// AgentRepository is the credential store for agents.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	FindByID(ctx context.Context, id string) (*domain.Agent, error)
	FindByEmail(ctx context.Context, email string) (*domain.Agent, error)
	FindByUsername(ctx context.Context, username string) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Update(ctx context.Context, id string, upd AgentUpdate) (*domain.Agent, error)
	Delete(ctx context.Context, id string) (*domain.Agent, error)
	SetPresence(ctx context.Context, id string, online bool, at time.Time) error
}
