package config

import "time"

// RateLimitConfig controls the Redis fixed-window limiter applied
// to the auth endpoints.  Limit requests are allowed per Window per
// client key; with Enabled false or no Redis client the middleware
// becomes a pass-through.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads rate-limit settings from the
// environment.  Defaults allow 30 requests per minute per client.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_REQUESTS", 30),
		Window:  time.Minute,
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if s := envStr("RATE_LIMIT_WINDOW", ""); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.Window = d
		}
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	return cfg
}
