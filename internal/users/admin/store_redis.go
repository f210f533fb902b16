// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/memoka/internal/platform/constants"
)

// statsCacheTTL keeps dashboard aggregates fresh enough while absorbing
// repeated polling. Stale stats are harmless; stale identity would not be,
// which is why ONLY stats live in this cache.
const statsCacheTTL = 30 * time.Second

// statsCacheKey is the single cache slot for the dashboard payload.
const statsCacheKey = constants.RedisPrefixAdminStats + "current"

// RedisStatsCache implements [StatsCache] on top of go-redis.
//
// Every failure path degrades to a cache miss: the dashboard always works
// with Redis down, just slower.
type RedisStatsCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStatsCache creates a Redis-backed stats cache.
func NewStatsCache(client *redis.Client, logger *slog.Logger) *RedisStatsCache {
	return &RedisStatsCache{client: client, logger: logger}
}

// Get returns the cached stats, or nil on miss or any cache failure.
func (cache *RedisStatsCache) Get(ctx context.Context) *Stats {
	payload, err := cache.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.WarnContext(ctx, "stats_cache_read_failed", slog.String("error", err.Error()))
		}
		return nil
	}

	stats := &Stats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		cache.logger.WarnContext(ctx, "stats_cache_decode_failed", slog.String("error", err.Error()))
		return nil
	}

	return stats
}

// Set stores the stats for [statsCacheTTL]. Failures are logged and swallowed.
func (cache *RedisStatsCache) Set(ctx context.Context, stats *Stats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		cache.logger.WarnContext(ctx, "stats_cache_encode_failed", slog.String("error", err.Error()))
		return
	}

	if err := cache.client.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
		cache.logger.WarnContext(ctx, "stats_cache_write_failed", slog.String("error", err.Error()))
	}
}
