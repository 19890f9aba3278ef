package repository

import (
	"context"
	"errors"

	"corpintel_backend/internal/discovery/pattern"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "email_pattern:"

// RedisStore backs the pattern store with Redis so learned templates survive
// restarts and are shared across instances. Same contract as the in-memory
// store: last-write-wins, no TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed pattern store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetPattern returns the learned template for a domain, or empty when none.
func (s *RedisStore) GetPattern(ctx context.Context, domain string) (pattern.Template, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+domain).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pattern.Template(val), nil
}

// SavePattern stores the template for a domain, overwriting any previous one.
func (s *RedisStore) SavePattern(ctx context.Context, domain string, tmpl pattern.Template) error {
	if tmpl == "" {
		return nil
	}
	return s.client.Set(ctx, redisKeyPrefix+domain, string(tmpl), 0).Err()
}
