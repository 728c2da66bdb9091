package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "roster:notified:"

// ErrInvalidTTL is returned by NewIdempotencyStore for a non-positive ttl.
var ErrInvalidTTL = errors.New("idempotency ttl must be positive")

// IdempotencyStore claims keys with SET NX EX so that every instance agrees
// on which notifications were already sent.
type IdempotencyStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore.
func NewIdempotencyStore(client redis.UniversalClient, ttl time.Duration) (*IdempotencyStore, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}, nil
}

// Claim returns true if key was not claimed within the ttl.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}

// Release deletes the claim on key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}
