package config

import (
	"time"
)

// CacheConfig defines settings for the cache-aside wrapper applied
// to event reads. When Enabled is false or no Redis client is
// configured, caching is disabled and reads call through. TTL defines
// the lifetime of cache entries and Prefix namespaces the keys.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a
// CacheConfig. Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envStr("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(envStr("CACHE_TTL", "30s")),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
