package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pitchside/scoutd/internal/repository"
)

var _ repository.GuardStore = (*guardStore)(nil)

const guardKeyPrefix = "scoutd:guard:"

type guardStore struct {
	client *goredis.Client
}

// NewGuardStore creates a Redis-backed one-shot key store using SETNX.
func NewGuardStore(client *goredis.Client) repository.GuardStore {
	return &guardStore{client: client}
}

// Acquire atomically claims a key. Returns false when another claim already
// holds it inside the TTL window.
func (s *guardStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, guardKeyPrefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: acquire guard: %w", err)
	}
	return ok, nil
}

// Release deletes a claimed key so it can be acquired again.
func (s *guardStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, guardKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis: release guard: %w", err)
	}
	return nil
}
