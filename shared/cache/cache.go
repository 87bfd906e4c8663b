package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"lodging/config"
	"lodging/infras/otel"
	"lodging/infras/redis"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	Nil                   = goRedis.Nil
)

// Cache is a process-wide key/value store. Values are JSON encoded on Save,
// so every Get decodes a fresh copy.
type Cache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context, pattern string) error
}

// New builds the cache selected by CACHE_DRIVER. Unknown drivers fall back to memory.
func New(cfg *config.Config, ot otel.Otel) Cache {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		return NewRedisCache(redis.New(cfg), ot)
	case config.CacheDriverMemory, "":
		return NewMemoryCache(ot)
	default:
		log.Warn().Str("driver", cfg.Cache.Driver).Msg("unknown cache driver, using memory")

		return NewMemoryCache(ot)
	}
}
