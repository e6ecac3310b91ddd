package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agendavista/task-api/internal/core/domain"
)

// TaskCache caches each user's task list in Redis. Keys are scoped per user
// and every write to a user's tasks invalidates that user's entry, so a
// cached list is never older than the last mutation.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a TaskCache wrapping the given client.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for userID, or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, userID string) ([]*domain.Task, error) {
	b, err := c.rdb.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("task cache get: %w", err)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("task cache decode: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// SetList stores the list for userID, expiring after the configured TTL.
func (c *TaskCache) SetList(ctx context.Context, userID string, tasks []*domain.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("task cache encode: %w", err)
	}
	return c.rdb.Set(ctx, c.key(userID), b, c.ttl).Err()
}

// Invalidate drops the cached list for userID.
func (c *TaskCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *TaskCache) key(userID string) string {
	return "tasks:user:" + userID
}
