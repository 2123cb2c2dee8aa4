package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearRateLimitEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RATE_LIMIT_ENABLED",
		"RATE_LIMIT_CAPACITY",
		"RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL",
		"RATE_LIMIT_TTL",
		"RATE_LIMIT_KEY_STRATEGY",
		"RATE_LIMIT_PREFIX",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	clearRateLimitEnv(t)

	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.TTL)
	// The limiter runs before authentication, so the default strategy must
	// not depend on a user dimension.
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	clearRateLimitEnv(t)
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is lifted to five refill intervals so buckets outlive refills.
	assert.Equal(t, 10*time.Second, cfg.TTL)
}
