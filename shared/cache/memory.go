package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"lodging/infras/otel"
	"lodging/shared/metrics"
	"path"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const memoryDriverName = "memory"

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memoryCache keeps encoded entries in a sync.Map so operations on
// distinct keys never contend on one lock.
type memoryCache struct {
	entries sync.Map
	otel    otel.Otel
	now     func() time.Time
}

func NewMemoryCache(ot otel.Otel) Cache {
	return &memoryCache{
		otel: ot,
		now:  time.Now,
	}
}

// Save implements Cache. A duration <= 0 keeps the entry until it is removed.
func (cache *memoryCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	default:
		raw, err = json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Str("key", key).Str("MemoryCache", "Save").Msg("failed to marshal cache")

			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
	}

	entry := memoryEntry{value: raw}
	if duration > 0 {
		entry.expiresAt = cache.now().Add(time.Second * time.Duration(duration))
	}

	cache.entries.Store(key, entry)
	metrics.ObserveCache(memoryDriverName, metrics.CacheEventSet)

	return nil
}

// Get implements Cache.
func (cache *memoryCache) Get(ctx context.Context, key string, value any) (err error) {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	stored, ok := cache.entries.Load(key)
	if !ok {
		metrics.ObserveCache(memoryDriverName, metrics.CacheEventMiss)

		return fmt.Errorf("failed to get cache value: %w", Nil)
	}

	entry, _ := stored.(memoryEntry)
	if entry.expired(cache.now()) {
		cache.entries.CompareAndDelete(key, stored)
		metrics.ObserveCache(memoryDriverName, metrics.CacheEventMiss)

		return fmt.Errorf("failed to get cache value: %w", Nil)
	}

	metrics.ObserveCache(memoryDriverName, metrics.CacheEventHit)

	if v, ok := value.(*string); ok {
		*v = string(entry.value)

		return nil
	}

	if err = json.Unmarshal(entry.value, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("MemoryCache", "Get").Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Delete implements Cache.
func (cache *memoryCache) Delete(ctx context.Context, key string) (bool, error) {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	stored, loaded := cache.entries.LoadAndDelete(key)
	if !loaded {
		return false, nil
	}

	metrics.ObserveCache(memoryDriverName, metrics.CacheEventDel)

	entry, _ := stored.(memoryEntry)

	return !entry.expired(cache.now()), nil
}

// Clear implements Cache. The pattern uses glob syntax, "*" removes everything.
func (cache *memoryCache) Clear(ctx context.Context, pattern string) (err error) {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	if _, err = path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid cache pattern %q: %w", pattern, err)
	}

	cache.entries.Range(func(key, _ any) bool {
		k, _ := key.(string)
		if matched, _ := path.Match(pattern, k); matched {
			cache.entries.Delete(k)
			metrics.ObserveCache(memoryDriverName, metrics.CacheEventDel)
		}

		return true
	})

	return nil
}
