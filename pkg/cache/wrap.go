package cache

import (
	"context"
	"time"
)

// NullCache never stores anything: every Get misses. It backs the "none"
// backend and --no-cache.
type NullCache struct{}

func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

// ttlCache overrides the TTL of every write.
type ttlCache struct {
	Cache
	ttl time.Duration
}

// WithTTL returns a Cache that stores every entry with ttl regardless of the
// TTL passed to Set. A ttl of zero or less returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return &ttlCache{Cache: c, ttl: ttl}
}

func (c *ttlCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}

var (
	_ Cache = (*NullCache)(nil)
	_ Cache = (*ttlCache)(nil)
)
