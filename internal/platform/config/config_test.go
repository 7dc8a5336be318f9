package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/bookkeeping")
	t.Setenv("RATE_CACHE_DRIVER", "")
	t.Setenv("ECB_FALLBACK_WINDOW_DAYS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/bookkeeping", cfg.DatabaseURL)
	assert.Equal(t, "EUR", cfg.ECBTargetCurrency)
	assert.Equal(t, 10*time.Second, cfg.ECBSingleTimeout)
	assert.Equal(t, 30*time.Second, cfg.ECBRangeTimeout)
	assert.Equal(t, "memory", cfg.RateCacheDriver)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ECB_FALLBACK_WINDOW_DAYS", "10")
	t.Setenv("ECB_SINGLE_TIMEOUT", "2s")
	t.Setenv("ECB_BASE_URL", "http://ecb.test/EXR/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("BACKFILL_PAUSE", "1s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.ECBFallbackWindowDays)
	assert.Equal(t, 2*time.Second, cfg.ECBSingleTimeout)
	assert.Equal(t, "http://ecb.test/EXR", cfg.ECBBaseURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Second, cfg.BackfillPause)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ECB_RANGE_TIMEOUT", "soon")
	t.Setenv("RATE_CACHE_DRIVER", "memcached")
	t.Setenv("ECB_TARGET_CURRENCY", "EURO")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ECBRangeTimeout)
	assert.Equal(t, "memory", cfg.RateCacheDriver)
	assert.Equal(t, "EUR", cfg.ECBTargetCurrency)
}

func TestLoadConfig_RedisWithoutURL(t *testing.T) {
	t.Setenv("RATE_CACHE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.RateCacheDriver)
}
