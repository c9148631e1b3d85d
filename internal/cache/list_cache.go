package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache caches list query results of one entity type in Redis. Keys are
// "<prefix>:<filter key>".
type ListCache[T any] struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewListCache returns a new ListCache.
func NewListCache[T any](rdb *redis.Client, prefix string, ttl time.Duration) *ListCache[T] {
	return &ListCache[T]{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *ListCache[T]) key(k string) string { return c.prefix + ":" + k }

// Get returns the cached list for k. ok is false on a miss.
func (c *ListCache[T]) Get(ctx context.Context, k string) (list []T, ok bool, err error) {
	b, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Set stores the list for k. An empty list is cached too.
func (c *ListCache[T]) Set(ctx context.Context, k string, list []T) error {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(k), b, c.ttl).Err()
}

// InvalidateAll removes every key under the prefix (cache invalidation on write).
func (c *ListCache[T]) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
