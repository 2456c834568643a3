// Package cache provides Redis-backed caching for aggregated profile bundles.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProfileCache stores assembled profile bundles keyed by user email.
// All operations are best effort: a nil or unreachable Redis never fails
// the caller, it only disables the cache.
type ProfileCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewProfileCache creates a ProfileCache.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "profile".
func NewProfileCache(rdb *redis.Client, ttl time.Duration, namespace string) *ProfileCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "profile"
	}
	return &ProfileCache{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get returns the cached bundle bytes for an email, or false on miss.
func (c *ProfileCache) Get(ctx context.Context, email string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, c.key(email)).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}
	return b, true
}

// Set stores the bundle bytes for an email (best effort).
func (c *ProfileCache) Set(ctx context.Context, email string, bundle []byte) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(email), bundle, c.ttl).Err()
}

// Invalidate drops the cached bundle for an email.
// Form record writes call this so the next profile read sees the new record.
func (c *ProfileCache) Invalidate(ctx context.Context, email string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.key(email)).Err()
}

// key generates the Redis key for an email.
func (c *ProfileCache) key(email string) string {
	return c.namespace + ":" + safe(email)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
