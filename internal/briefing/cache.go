package briefing

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/qbit/models"
)

const cacheKeyPrefix = "briefing:"

// Cache keeps generated briefings in Redis for a short window so
// repeat loads and the prefetcher do not re-run generation. A nil
// *Cache is a valid always-miss cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(p models.GenerationParams) string {
	return cacheKeyPrefix + p.Date.Format("2006-01-02") + "|" + p.Country + "|" + p.Category
}

func (c *Cache) Get(ctx context.Context, p models.GenerationParams) (*models.Briefing, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, cacheKey(p)).Result()
	if err != nil {
		return nil, false
	}
	var b models.Briefing
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		// A cache entry that fails to parse is dropped, never served.
		_ = c.client.Del(ctx, cacheKey(p)).Err()
		return nil, false
	}
	return &b, true
}

func (c *Cache) Put(ctx context.Context, p models.GenerationParams, b *models.Briefing) {
	if c == nil {
		return
	}
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(p), data, c.ttl).Err(); err != nil {
		slog.Warn("briefing cache write failed", "error", err)
	}
}
