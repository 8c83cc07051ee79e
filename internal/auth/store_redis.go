// Copyright (c) 2026 HostelHQ. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/constants"
)

// RedisSetupTokenRepository implements [SetupTokenRepository] using Redis.
//
// Setup tokens are worthless after their TTL, so Redis key expiry handles
// cleanup with no background job.
type RedisSetupTokenRepository struct {
	client *redis.Client
}

// NewSetupTokenRepository creates a Redis-backed [SetupTokenRepository].
func NewSetupTokenRepository(client *redis.Client) *RedisSetupTokenRepository {
	return &RedisSetupTokenRepository{client: client}
}

// Set stores a setup token bound to userID for the given lifetime.
func (repository *RedisSetupTokenRepository) Set(ctx context.Context, token string, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixSetupToken + token

	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_setup_token_set_failed: %w", err)
	}

	return nil
}

// Get retrieves the userID for a token. Returns [apperr.NotFound] when the
// token is absent or has expired.
func (repository *RedisSetupTokenRepository) Get(ctx context.Context, token string) (string, error) {
	key := constants.RedisPrefixSetupToken + token

	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Setup token")
		}
		return "", fmt.Errorf("redis_setup_token_get_failed: %w", err)
	}

	return userID, nil
}

// Delete removes a token after redemption so it can never be reused.
func (repository *RedisSetupTokenRepository) Delete(ctx context.Context, token string) error {
	key := constants.RedisPrefixSetupToken + token

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_setup_token_delete_failed: %w", err)
	}

	return nil
}
