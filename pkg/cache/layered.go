package cache

import (
	"context"
	"time"
)

// LayeredCache implements two-level cache (L1: Memory, L2: any backend that
// exchanges encoded payloads, normally Redis).
type LayeredCache struct {
	memCache  *MemoryCache
	remote    Service
	raw       rawStore
	memoryTTL time.Duration
}

// NewLayeredCache creates a layered cache in front of Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	return newLayered(redisCache, redisCache, opts...)
}

func newLayered(remote Service, raw rawStore, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		MemoryTTL:     time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		memCache:  NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		remote:    remote,
		raw:       raw,
		memoryTTL: cfg.MemoryTTL,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	// Write-through: remote first, then memory
	if err := lc.raw.setRaw(ctx, key, data, expiration); err != nil {
		return err
	}
	_ = lc.memCache.setRaw(ctx, key, data, lc.l1TTL(expiration))
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if data, _, err := lc.memCache.getRaw(ctx, key); err == nil {
		return decode(data, dest)
	}

	data, ttl, err := lc.raw.getRaw(ctx, key)
	if err != nil {
		return err
	}

	_ = lc.memCache.setRaw(ctx, key, data, lc.l1TTL(ttl))
	return decode(data, dest)
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.remote.Delete(ctx, keys...)
}

// l1TTL keeps memory entries from outliving the remote copy.
func (lc *LayeredCache) l1TTL(remaining time.Duration) time.Duration {
	if remaining > 0 && remaining < lc.memoryTTL {
		return remaining
	}
	return lc.memoryTTL
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.remote.Close()
}
