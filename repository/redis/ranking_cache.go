package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

// RankingCache keeps short-lived copies of the top-rated and most-sold
// projections in Redis. Staleness is bounded by the TTL; callers fall back to
// the repository on a miss or any cache failure.
type RankingCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewRankingCache creates a Redis-backed ranking cache.
func NewRankingCache(client *redislib.Client, ttl time.Duration) *RankingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RankingCache{
		client: client,
		prefix: "rankings:",
		ttl:    ttl,
	}
}

// Get unmarshals the cached value for key into dest. The second return value
// is false on a miss.
func (c *RankingCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	result, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if err == redislib.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal([]byte(result), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for the cache TTL.
func (c *RankingCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), payload, c.ttl).Err()
}

func (c *RankingCache) key(id string) string {
	return fmt.Sprintf("%s%s", c.prefix, id)
}
