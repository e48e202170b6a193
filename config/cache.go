package config

import (
	"time"

	"keeper/utils"
)

// CacheConfig carries the Redis connection URL and the per-view TTLs.
// TTLs are chosen by staleness tolerance: the primary list changes most
// visibly, trash and archive churn less urgently.
type CacheConfig struct {
	RedisURL string
	ViewTTLs map[string]time.Duration
}

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		RedisURL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379"),
		ViewTTLs: map[string]time.Duration{
			"all":      utils.GetEnvAsDuration("CACHE_TTL_ALL", time.Hour),
			"archived": utils.GetEnvAsDuration("CACHE_TTL_ARCHIVED", 30*time.Minute),
			"trash":    utils.GetEnvAsDuration("CACHE_TTL_TRASH", 15*time.Minute),
			"pinned":   utils.GetEnvAsDuration("CACHE_TTL_PINNED", 30*time.Minute),
		},
	}
}
