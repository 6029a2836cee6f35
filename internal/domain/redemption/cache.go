package redemption

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefixPartnerStats = "partner_stats:"

// StatsCache stores partner reports for a short time. Misses and cache
// failures both fall through to the database.
type StatsCache interface {
	Get(ctx context.Context, provider string) (*PartnerStats, bool)
	Set(ctx context.Context, provider string, stats *PartnerStats)
}

// NewStatsCache returns a Redis-backed cache, or a no-op cache when client is nil.
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	if client == nil || ttl <= 0 {
		return noopCache{}
	}
	return &redisStatsCache{redis: client, ttl: ttl}
}

type redisStatsCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func statsKey(provider string) string {
	return keyPrefixPartnerStats + strings.ToLower(provider)
}

func (c *redisStatsCache) Get(ctx context.Context, provider string) (*PartnerStats, bool) {
	raw, err := c.redis.Get(ctx, statsKey(provider)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("provider", provider).Msg("Partner stats cache read failed")
		}
		return nil, false
	}

	var stats PartnerStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Warn().Err(err).Str("provider", provider).Msg("Discarding malformed partner stats cache entry")
		return nil, false
	}
	return &stats, true
}

func (c *redisStatsCache) Set(ctx context.Context, provider string, stats *PartnerStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, statsKey(provider), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("provider", provider).Msg("Partner stats cache write failed")
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*PartnerStats, bool) { return nil, false }
func (noopCache) Set(context.Context, string, *PartnerStats)        {}
