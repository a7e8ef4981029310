package bootstrap

import (
	"context"

	"resione-server/internal/infra/cache"
	"resione-server/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewCalendarCache,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewCalendarCache(client *redis.Client, cfg config.Config) *cache.CalendarCache {
	return cache.NewCalendarCache(client, cfg.Redis.CacheTTL)
}
