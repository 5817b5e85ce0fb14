package cache

import (
	"context"
	"time"

	"github.com/matzehuels/springboard/pkg/observability"
)

// Instrument wraps c so every Get and Set reports to the registered cache
// hooks.
func Instrument(c Cache) Cache { return &instrumented{Cache: c} }

type instrumented struct{ Cache }

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}
