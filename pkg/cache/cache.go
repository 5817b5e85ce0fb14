// Package cache stores rendered springboard artifacts.
//
// A [Cache] is a byte store with per-entry TTL. Three backends are provided:
//
//   - [NullCache]: never stores anything (--no-cache, tests)
//   - [FileCache]: one JSON envelope per key under a directory (CLI)
//   - [RedisCache]: a shared redis server (serve)
//
// Keys come from a [Keyer], which hashes the options that determine an
// artifact so that any change to them produces a new key. [Instrument] wraps
// a cache so hits, misses and writes reach the observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the data for key and whether it was found. A missing or
	// expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Fetch returns the cached data for key, or calls compute and stores its
// result. The boolean reports a cache hit. A failing cache read is treated
// as a miss and a failing write is ignored: the artifact is still returned.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
