package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"resione-server/internal/pkg/config"
	"resione-server/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// CalendarCache is a read-through cache of the approved calendar for a
// (zone, date). It is advisory only: every error degrades to a miss and the
// caller falls back to Postgres.
type CalendarCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewCalendarCache(client *redis.Client, ttl time.Duration) *CalendarCache {
	return &CalendarCache{client: client, ttl: ttl}
}

func calendarKey(zone, date string) string {
	return fmt.Sprintf("calendar:%s:%s", zone, date)
}

// Get returns the cached entries and whether the key was present. An empty
// approved list is cached too, so present-but-empty is a valid hit.
func (c *CalendarCache) Get(ctx context.Context, zone, date string) ([]queries.CalendarEntry, bool) {
	val, err := c.client.Get(ctx, calendarKey(zone, date)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("calendar cache read failed", "zone", zone, "date", date, "error", err.Error())
		return nil, false
	}

	var entries []queries.CalendarEntry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		slog.Warn("calendar cache payload corrupt, dropping key", "zone", zone, "date", date, "error", err.Error())
		c.Invalidate(ctx, zone, date)
		return nil, false
	}
	return entries, true
}

func (c *CalendarCache) Set(ctx context.Context, zone, date string, entries []queries.CalendarEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		slog.Warn("calendar cache marshal failed", "zone", zone, "date", date, "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, calendarKey(zone, date), data, c.ttl).Err(); err != nil {
		slog.Warn("calendar cache write failed", "zone", zone, "date", date, "error", err.Error())
	}
}

// Invalidate drops the key after any write that changes the approved set
// for (zone, date): approval, edit, cancellation.
func (c *CalendarCache) Invalidate(ctx context.Context, zone, date string) {
	if err := c.client.Del(ctx, calendarKey(zone, date)).Err(); err != nil {
		slog.Warn("calendar cache invalidation failed", "zone", zone, "date", date, "error", err.Error())
	}
}
