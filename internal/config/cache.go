package config

import "time"

// CacheConfig controls the Redis response cache applied to catalog
// GET endpoints.  With Enabled false or no Redis client available
// the middleware becomes a pass-through.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment with
// conservative defaults: 30 second TTL, 1 MiB response cap.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          30 * time.Second,
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if s := envStr("CACHE_TTL", ""); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.TTL = d
		}
	}
	return cfg
}
