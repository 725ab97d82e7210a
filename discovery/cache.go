package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	dindr "github.com/dindr/services"
)

// cacheKeyPrefix namespaces discovery cache keys in Redis.
const cacheKeyPrefix = "discovery:search:"

// defaultCacheTTL bounds how long a search result stays warm. Places
// data drifts slowly; minutes is plenty for a swiping round.
const defaultCacheTTL = 5 * time.Minute

// Cache stores search results keyed by zipcode and radius. Lookups and
// writes are best effort: a miss or failure only costs a provider call.
type Cache interface {
	Get(ctx context.Context, key string) ([]dindr.Restaurant, bool)
	Set(ctx context.Context, key string, restaurants []dindr.Restaurant)
}

// searchCacheKey builds the cache key for a zipcode+radius search.
func searchCacheKey(zipcode string, radius float64) string {
	return fmt.Sprintf("%s%s:%g", cacheKeyPrefix, zipcode, radius)
}

// RedisCache implements Cache on Redis with a TTL per entry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed search result cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]dindr.Restaurant, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var restaurants []dindr.Restaurant
	if err := json.Unmarshal([]byte(val), &restaurants); err != nil {
		return nil, false
	}
	return restaurants, true
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, restaurants []dindr.Restaurant) {
	val, err := json.Marshal(restaurants)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, val, c.ttl).Err()
}

// Compile-time check that RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
