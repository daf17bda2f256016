package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mateluxy/backoffice-api/internal/core/domain"
)

// ResetTokenStore keeps at most one pending password reset per identity.
// Key format:
//
//	pwreset:token:<sha256>  -> identity id
//	pwreset:identity:<id>   -> sha256
//
// Both keys share the TTL so an expired reset leaves nothing behind.
type ResetTokenStore struct {
	client redis.Cmdable
}

func NewResetTokenStore(client redis.Cmdable) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Save replaces any pending reset for identityID.
func (s *ResetTokenStore) Save(ctx context.Context, identityID, tokenHash string, ttl time.Duration) error {
	previous, err := s.client.Get(ctx, identityKey(identityID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("reset token lookup: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != "" {
			pipe.Del(ctx, tokenKey(previous))
		}
		pipe.Set(ctx, tokenKey(tokenHash), identityID, ttl)
		pipe.Set(ctx, identityKey(identityID), tokenHash, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset token save: %w", err)
	}
	return nil
}

// Lookup resolves a token hash to its identity id.
func (s *ResetTokenStore) Lookup(ctx context.Context, tokenHash string) (string, error) {
	id, err := s.client.Get(ctx, tokenKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("reset token lookup: %w", err)
	}
	return id, nil
}

// Delete consumes the pending reset for identityID, if any.
func (s *ResetTokenStore) Delete(ctx context.Context, identityID string) error {
	hash, err := s.client.Get(ctx, identityKey(identityID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reset token lookup: %w", err)
	}
	if err := s.client.Del(ctx, tokenKey(hash), identityKey(identityID)).Err(); err != nil {
		return fmt.Errorf("reset token delete: %w", err)
	}
	return nil
}

func tokenKey(hash string) string  { return "pwreset:token:" + hash }
func identityKey(id string) string { return "pwreset:identity:" + id }
