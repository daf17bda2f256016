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

type adminService struct {
	repo     ports.AdminRepository
	hasher   ports.PasswordHasher
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewAdminService returns an AdminService implementation.
func NewAdminService(
	repo ports.AdminRepository,
	hasher ports.PasswordHasher,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{
		repo:     repo,
		hasher:   hasher,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *adminService) Create(ctx context.Context, actorID string, in ports.CreateAdminInput) (*domain.Admin, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.NewValidationError("username, email and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	if err := s.ensureUnique(ctx, "", email, username); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create admin: hash: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Admin{
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ProfileImage: in.ProfileImage,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.log.Info().Str("admin_id", created.ID).Str("actor_id", actorID).Str("role", created.Role).Msg("admin created")
	s.notifier.Publish(ctx, actorID, domain.NotifyAdminAdded,
		fmt.Sprintf("New admin %s was added", displayName(created.FullName, created.Username)),
		domain.EntityRef{ID: created.ID, Name: created.Username})
	return created, nil
}

func (s *adminService) Get(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

func (s *adminService) List(ctx context.Context) ([]*domain.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Update checks the role policy before uniqueness.
func (s *adminService) Update(ctx context.Context, actorID, targetID string, in ports.UpdateAdminInput) (*domain.Admin, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}

	changesRole := in.Role != nil && *in.Role != target.Role
	if err := domain.AuthorizeAdminChange(actor, target.ID, changesRole); err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}

	upd := ports.AdminUpdate{
		FullName:     trimmed(in.FullName),
		ProfileImage: in.ProfileImage,
		Phone:        in.Phone,
	}
	if changesRole {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.NewValidationError(fmt.Sprintf("unknown role %q", *in.Role))
		}
		upd.Role = in.Role
	}

	var email, username string
	if in.Email != nil {
		email = domain.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, domain.NewValidationError("email cannot be empty")
		}
		upd.Email = &email
	}
	if in.Username != nil {
		username = strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, domain.NewValidationError("username cannot be empty")
		}
		upd.Username = &username
	}
	if err := s.ensureUnique(ctx, target.ID, email, username); err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}

	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < minPasswordLength {
			return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update admin: hash: %w", err)
		}
		upd.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, target.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}

	s.log.Info().Str("admin_id", updated.ID).Str("actor_id", actorID).Bool("role_changed", changesRole).Msg("admin updated")
	s.notifier.Publish(ctx, actorID, domain.NotifyAdminUpdated,
		fmt.Sprintf("Admin %s was updated", displayName(updated.FullName, updated.Username)),
		domain.EntityRef{ID: updated.ID, Name: updated.Username})
	return updated, nil
}

// Delete refuses to remove the last admin. The count check and the delete are
// not atomic; a post-delete recount restores the record if a concurrent
// delete emptied the collection.
func (s *adminService) Delete(ctx context.Context, actorID, targetID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if err := domain.AuthorizeAdminChange(actor, target.ID, false); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("delete admin: count: %w", err)
	}
	if count <= 1 {
		return domain.ErrLastAdmin
	}

	deleted, err := s.repo.Delete(ctx, target.ID)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}

	remaining, err := s.repo.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("admin_id", deleted.ID).Msg("post-delete admin count failed")
	} else if remaining == 0 {
		if err := s.repo.Restore(ctx, deleted); err != nil {
			s.log.Error().Err(err).Str("admin_id", deleted.ID).Msg("failed to restore last admin")
			return fmt.Errorf("delete admin: restore: %w", err)
		}
		s.log.Warn().Str("admin_id", deleted.ID).Msg("concurrent delete left no admins, record restored")
		return domain.ErrLastAdmin
	}

	s.log.Info().Str("admin_id", deleted.ID).Str("actor_id", actorID).Msg("admin deleted")
	s.notifier.Publish(ctx, actorID, domain.NotifyAdminDeleted,
		fmt.Sprintf("Admin %s was deleted", displayName(deleted.FullName, deleted.Username)),
		domain.EntityRef{ID: deleted.ID, Name: deleted.Username})
	return nil
}

func (s *adminService) UsernameAvailable(ctx context.Context, username, excludeID string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, domain.NewValidationError("username is required")
	}
	existing, err := s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrAdminNotFound):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("check username: %w", err)
	}
	return existing.ID == excludeID, nil
}

func (s *adminService) Role(ctx context.Context, id string) (string, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return admin.Role, nil
}

// actor loads the authenticated admin. A token for an identity that no longer
// exists is treated as lacking permission.
func (s *adminService) actor(ctx context.Context, actorID string) (*domain.Admin, error) {
	actor, err := s.repo.FindByID(ctx, actorID)
	if errors.Is(err, domain.ErrAdminNotFound) {
		return nil, domain.ErrForbidden
	}
	return actor, err
}

// ensureUnique checks email and username against every admin except
// excludeID. Empty values are skipped.
func (s *adminService) ensureUnique(ctx context.Context, excludeID, email, username string) error {
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != excludeID:
			return domain.ErrEmailTaken
		case err != nil && !errors.Is(err, domain.ErrAdminNotFound):
			return err
		}
	}
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		switch {
		case err == nil && existing.ID != excludeID:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, domain.ErrAdminNotFound):
			return err
		}
	}
	return nil
}

func displayName(fullName, username string) string {
	if fullName != "" {
		return fullName
	}
	return username
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
