// Package xcache provides typed caches on top of gocache, backed by memory,
// redis, or a two-level chain of both.
package xcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	cachelib "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
	redis "github.com/redis/go-redis/v9"

	"github.com/porticohq/portico/internal/log"
	redis_store "github.com/porticohq/portico/internal/pkg/xcache/redis"
)

// Cache is an alias to the gocache CacheInterface for convenience.
type Cache[T any] = cachelib.CacheInterface[T]

// SetterCache is the setter-capable cache interface.
type SetterCache[T any] = cachelib.SetterCacheInterface[T]

// NewMemory creates a pure in-memory cache using patrickmn/go-cache as the
// backend.
func NewMemory[T any](client *gocache.Cache, options ...Option) SetterCache[T] {
	s := gocache_store.NewGoCache(client, options...)
	return cachelib.New[T](s)
}

// NewMemoryWithOptions builds the go-cache client for you using the provided
// default expiration and cleanup interval.
func NewMemoryWithOptions[T any](defaultExpiration, cleanupInterval time.Duration, options ...Option) SetterCache[T] {
	client := gocache.New(defaultExpiration, cleanupInterval)
	return NewMemory[T](client, options...)
}

// NewRedis creates a pure redis cache using go-redis as the client.
func NewRedis[T any](client *redis.Client, options ...Option) SetterCache[T] {
	s := redis_store.NewRedisStore[T](client, options...)
	return cachelib.New[T](s)
}

// NewTwoLevel constructs a 2-level cache: memory first, then redis.
func NewTwoLevel[T any](memory SetterCache[T], redis SetterCache[T]) Cache[T] {
	return cachelib.NewChain[T](memory, redis)
}

// NewFromConfig builds a typed cache from the given Config.
// Modes:
//   - memory: in-memory only
//   - redis: redis only
//   - two-level: memory + redis chain
//
// If mode is not set or invalid, returns a noop cache that does nothing.
func NewFromConfig[T any](cfg Config) Cache[T] {
	if cfg.Mode == "" {
		return NewNoop[T]()
	}

	memExpiration := defaultIfZero(cfg.Memory.Expiration, 5*time.Minute)
	memCleanupInterval := defaultIfZero(cfg.Memory.CleanupInterval, 10*time.Minute)
	mem := NewMemoryWithOptions[T](memExpiration, memCleanupInterval, store.WithExpiration(memExpiration))

	var rds SetterCache[T]

	if cfg.Redis.Addr != "" && cfg.Mode != ModeMemory {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(context.Background()).Err(); err != nil {
			panic(fmt.Errorf("failed to ping redis: %w", err))
		}

		redisExpiration := defaultIfZero(cfg.Redis.Expiration, 30*time.Minute)
		rds = NewRedis[T](client, store.WithExpiration(redisExpiration))
	}

	switch cfg.Mode {
	case ModeTwoLevel:
		if rds != nil {
			log.Info(context.Background(), "Using two-level cache")
			return NewTwoLevel[T](mem, rds)
		}

		return mem
	case ModeRedis:
		if rds == nil {
			panic(errors.New("redis cache config is invalid"))
		}

		log.Info(context.Background(), "Using redis cache")

		return rds
	case ModeMemory:
		log.Info(context.Background(), "Using memory cache")
		return mem
	default:
		log.Info(context.Background(), "Disable cache")
		return NewNoop[T]()
	}
}

func defaultIfZero(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}

	return d
}
