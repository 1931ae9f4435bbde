package controllers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyTTL = 24 * time.Hour

// IdempotencyStore guards checkout against duplicate submissions of the
// same request, e.g. a double-clicked order button.
type IdempotencyStore interface {
	// SetIdempotency claims a key, returning false if it was already claimed.
	SetIdempotency(ctx context.Context, key string) (bool, error)
}

type RedisIdempotencyStore struct {
	Client *redis.Client
}

func (s *RedisIdempotencyStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	return s.Client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
}
