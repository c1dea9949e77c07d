package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

var _ repository.TaskStatusStore = (*taskStore)(nil)

const taskKeyPrefix = "scoutd:task:"

type taskStore struct {
	client *goredis.Client
}

// NewTaskStatusStore creates a Redis-backed task status cache. Expiry is
// enforced by Redis itself; a missing or expired key reads as ErrTaskNotFound.
func NewTaskStatusStore(client *goredis.Client) repository.TaskStatusStore {
	return &taskStore{client: client}
}

func (s *taskStore) Put(ctx context.Context, rec *domain.TaskRecord, ttl time.Duration) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: marshal task record: %w", err)
	}
	if err := s.client.Set(ctx, taskKeyPrefix+rec.TaskID, body, ttl).Err(); err != nil {
		return fmt.Errorf("redis: put task record: %w", err)
	}
	return nil
}

func (s *taskStore) Get(ctx context.Context, taskID string) (*domain.TaskRecord, error) {
	body, err := s.client.Get(ctx, taskKeyPrefix+taskID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("redis: get task record: %w", err)
	}
	rec := &domain.TaskRecord{}
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, fmt.Errorf("redis: unmarshal task record: %w", err)
	}
	return rec, nil
}
