package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	cacheKey = "stats:global"
	cacheTTL = 5 * time.Minute
)

type GlobalStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// Cache keeps the dashboard counts in Redis for a short TTL. A nil client
// disables it; cache failures never fail the request.
type Cache struct {
	client *redis.Client
	slog   *slog.Logger
}

func NewCache(client *redis.Client, sl *slog.Logger) *Cache {
	return &Cache{client: client, slog: sl}
}

func (c *Cache) Get(ctx context.Context) (*GlobalStats, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, cacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.slog.Debug("stats cache read failed", "err", err)
		}
		return nil, false
	}

	var s GlobalStats
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (c *Cache) Set(ctx context.Context, s *GlobalStats) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
		c.slog.Debug("stats cache write failed", "err", err)
	}
}
