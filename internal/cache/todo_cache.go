package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	dom "TodoBoard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList    = "todo:list"
	keyVersion = "todo:list:version"
)

// TodoCache caches the full todo list in Redis.
// Filtered views are derived per request and never cached, since "today" moves.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList returns cached list or nil if miss.
func (c *TodoCache) GetList(ctx context.Context) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := []dom.Todo{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Version returns the invalidation counter. Read it before loading the list
// from storage and pass it to SetListAt.
func (c *TodoCache) Version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, keyVersion).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetList stores the list in cache unconditionally.
func (c *TodoCache) SetList(ctx context.Context, list []dom.Todo) error {
	b, err := encodeList(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// SetListAt stores the list only if no invalidation happened since version was read.
// It reports whether the list was stored.
func (c *TodoCache) SetListAt(ctx context.Context, version int64, list []dom.Todo) (bool, error) {
	b, err := encodeList(list)
	if err != nil {
		return false, err
	}
	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, keyVersion).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyList, b, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, keyVersion)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// InvalidateAll drops the cached list and bumps the version (cache invalidation on write).
func (c *TodoCache) InvalidateAll(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keyList)
		pipe.Incr(ctx, keyVersion)
		return nil
	})
	return err
}

func encodeList(list []dom.Todo) ([]byte, error) {
	if list == nil {
		list = []dom.Todo{}
	}
	return json.Marshal(list)
}
