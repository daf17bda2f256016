package ports

import (
	"context"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// AgentInput is shared by create and update. On update, empty strings and nil
// slices leave the stored value unchanged.
type AgentInput struct {
	Username      string
	FullName      string
	Email         string
	Password      string
	ProfileImage  string
	Position      string
	WhatsApp      string
	Department    string
	ContactNumber string
	VCard         string
	Languages     []string
	AboutMe       string
	Address       string
	SocialLinks   []string
}

type AgentService interface {
	Create(ctx context.Context, actorID string, in AgentInput) (*domain.Agent, error)
	Get(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Update(ctx context.Context, actorID, id string, in AgentInput) (*domain.Agent, error)
	Delete(ctx context.Context, actorID, id string) error
	UsernameAvailable(ctx context.Context, username, excludeID string) (bool, error)
}
