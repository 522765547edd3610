package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ritmo-app/ritmo-engine/internal/core/metrics"
)

// RedisSummaryCache memoizes day summaries keyed by user and date. It is a
// disposable accelerator: entries stay the source of truth and any write for
// a user drops every summary cached for them, since a weekly or monthly
// habit makes one day's write ripple across its whole period.
type RedisSummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSummaryCache(rdb *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{rdb: rdb, ttl: ttl}
}

func (c *RedisSummaryCache) key(userID, date string) string {
	return fmt.Sprintf("summary:%s:%s", userID, date)
}

func (c *RedisSummaryCache) GetDaySummary(ctx context.Context, userID, date string) (*metrics.DaySummary, error) {
	val, err := c.rdb.Get(ctx, c.key(userID, date)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary metrics.DaySummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		log.Printf("[CACHE] corrupted summary for user %s, cleaning up key", userID)
		c.rdb.Del(ctx, c.key(userID, date))
		return nil, nil
	}
	return &summary, nil
}

func (c *RedisSummaryCache) SetDaySummary(ctx context.Context, userID string, summary metrics.DaySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(userID, summary.Date), data, c.ttl).Err()
}

func (c *RedisSummaryCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("summary:%s:*", userID)

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
