package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache key not found")
)

// Helper provides read-through caching for repository adapters. A nil Redis
// client degrades to a no-op so the postgres adapter works without Redis.
type Helper struct {
	client *redis.Client
	prefix string
}

func NewHelper(client *redis.Client, prefix string) *Helper {
	return &Helper{client: client, prefix: prefix}
}

// Default TTLs per data type.
var (
	UserCacheTTL      = 15 * time.Minute
	ClassroomCacheTTL = 5 * time.Minute
	SummaryCacheTTL   = 30 * time.Second
)

func (h *Helper) key(key string) string {
	return fmt.Sprintf("%s%s", h.prefix, key)
}

// Get retrieves and unmarshals a cached value into dest.
func (h *Helper) Get(ctx context.Context, key string, dest interface{}) error {
	if h.client == nil {
		return ErrCacheNotAvailable
	}
	data, err := h.client.Get(ctx, h.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

// Set marshals and stores a value. Errors are returned but safe to ignore.
func (h *Helper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if h.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return h.client.Set(ctx, h.key(key), data, ttl).Err()
}

// Delete removes keys; missing keys are not an error.
func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if h.client == nil || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = h.key(k)
	}
	return h.client.Del(ctx, prefixed...).Err()
}

// InvalidatePattern removes every key matching the glob pattern.
func (h *Helper) InvalidatePattern(ctx context.Context, pattern string) error {
	if h.client == nil {
		return nil
	}
	iter := h.client.Scan(ctx, 0, h.key(pattern), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return h.client.Del(ctx, keys...).Err()
}

// CacheOrExecute returns the cached value for key, or runs fetch, caches the
// result, and unmarshals it into dest. Cache failures fall through to fetch.
func (h *Helper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() (interface{}, error)) error {
	if err := h.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	_ = h.Set(ctx, key, value, ttl)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// Manager groups the per-collection cache helpers used by the postgres
// adapter.
type Manager struct {
	User      *Helper
	Classroom *Helper
	Summary   *Helper

	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{
		User:      NewHelper(client, "user:"),
		Classroom: NewHelper(client, "classroom:"),
		Summary:   NewHelper(client, "summary:"),
		client:    client,
	}
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.client == nil {
		return ErrCacheNotAvailable
	}
	return m.client.Ping(ctx).Err()
}

// SafeInvalidate invalidates a pattern and swallows the error; cache
// invalidation must never fail a write.
func SafeInvalidate(ctx context.Context, helper *Helper, pattern string) {
	_ = helper.InvalidatePattern(ctx, pattern)
}
