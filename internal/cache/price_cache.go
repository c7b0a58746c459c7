package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const priceKey = "dashboard:bitcoin:latest"

// PriceCache keeps the last upstream bitcoin payload for a short TTL so a
// burst of polling dashboard clients does not burn through the upstream
// API quota. The cached bytes are relayed to clients unmodified.
type PriceCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewPriceCache creates a new PriceCache.
func NewPriceCache(redis *RedisClient, ttl time.Duration) *PriceCache {
	return &PriceCache{redis: redis, ttl: ttl}
}

// Get returns the cached payload, or false on a miss. Redis errors count
// as misses: the caller falls through to the upstream API.
func (c *PriceCache) Get(ctx context.Context) ([]byte, bool) {
	body, err := c.redis.GetBytes(ctx, priceKey)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores the payload for the configured TTL. Failures are logged and
// swallowed; caching is opportunistic.
func (c *PriceCache) Set(ctx context.Context, body []byte) {
	if err := c.redis.SetBytes(ctx, priceKey, body, c.ttl); err != nil {
		log.Warn().Err(err).Msg("failed to cache bitcoin payload")
	}
}
