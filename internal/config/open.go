package config

import (
	"context"

	"github.com/matzehuels/permnet/pkg/cache"
	"github.com/matzehuels/permnet/pkg/store"
)

// OpenCache builds the cache backend selected by c.Cache.Backend, applying
// c.Cache.TTL when set.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	var (
		backend cache.Cache
		err     error
	)
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendMemory:
		backend = cache.NewMemoryCache()
	case BackendRedis:
		backend, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	default:
		var dir string
		if dir, err = c.CacheDir(); err == nil {
			backend, err = cache.NewFileCache(dir)
		}
	}
	if err != nil {
		return nil, err
	}
	return cache.WithTTL(backend, c.Cache.TTL), nil
}

// Keyer returns the cache key scheme, scoped by c.Cache.Prefix when set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// OpenStore builds the network store selected by c.Store.Backend.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Store.Backend == BackendMongo {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		})
	}
	return store.NewMemoryStore(), nil
}
