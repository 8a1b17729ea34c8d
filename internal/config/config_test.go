package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("SOME_KEY", "value")
	assert.Equal(t, "value", envOr("SOME_KEY", "fallback"))
	assert.Equal(t, "fallback", envOr("SOME_MISSING_KEY", "fallback"))
}

func TestEnvIntAndBool(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_BAD_INT", "forty-two")
	assert.Equal(t, 42, envInt("SOME_INT", 7))
	assert.Equal(t, 7, envInt("SOME_BAD_INT", 7))
	assert.Equal(t, 7, envInt("SOME_MISSING_INT", 7))

	t.Setenv("SOME_BOOL", "yes")
	t.Setenv("SOME_OTHER_BOOL", "0")
	assert.True(t, envBool("SOME_BOOL", false))
	assert.False(t, envBool("SOME_OTHER_BOOL", true))
	assert.True(t, envBool("SOME_MISSING_BOOL", true))
}

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is raised to cover several refill intervals
	assert.Equal(t, 10*time.Second, cfg.TTL)
}
