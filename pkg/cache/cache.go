// Package cache provides the byte-level caches Repolens uses for upstream
// API responses and finished analyses.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [MemoryCache]: bounded in-process LRU with expiry, for a single server
//   - [RedisCache]: shared cache for multi-instance server deployments
//
// [Open] picks a backend from configuration.
//
// # Keys
//
// Keys are plain strings. [Key] derives a fixed-length key from arbitrary
// parts, and [Namespace] scopes a cache so that different clients cannot
// collide:
//
//	gh := cache.Namespace(c, "github:")
//	_ = gh.Set(ctx, "tree:octo/repo", data, time.Hour)
//
// # Retries
//
// [RetryWithBackoff] retries operations whose errors are wrapped with
// [Retryable]. The HTTP clients use it for transient upstream failures.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
// A ttl of zero means the entry does not expire.
type Cache interface {
	// Get returns the value and true on a hit. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	Close() error
}

// GetJSON reads key and unmarshals it into v. Undecodable entries are
// treated as misses.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// Namespace returns a view of c that prefixes every key with prefix.
// Clear on the view clears the underlying cache.
func Namespace(c Cache, prefix string) Cache {
	if n, ok := c.(*namespaced); ok {
		return &namespaced{inner: n.inner, prefix: n.prefix + prefix}
	}
	return &namespaced{inner: c, prefix: prefix}
}

type namespaced struct {
	inner  Cache
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return n.inner.Set(ctx, n.prefix+key, data, ttl)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Clear(ctx context.Context) error { return n.inner.Clear(ctx) }
func (n *namespaced) Close() error                    { return n.inner.Close() }
