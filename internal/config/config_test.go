package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_USER", "turf")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_NAME", "turf_booking")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 15, c.AccessTTLMin)
	assert.True(t, c.BookingConsumer)
	assert.Equal(t, "cache:6380", c.Redis.Addr)
	assert.Equal(t, "turf:pw@tcp(127.0.0.1:3306)/turf_booking?charset=utf8mb4&parseTime=true&loc=UTC", c.DSN())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "turf_booking")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	c, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 1, c.RefillTokens)
	assert.Equal(t, 2*time.Second, c.RefillInterval)
	assert.Equal(t, 10*time.Second, c.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")

	c, err := LoadCacheConfig()
	require.NoError(t, err)
	assert.True(t, c.Cacheable("GET"))
	assert.True(t, c.Cacheable("HEAD"))
	assert.False(t, c.Cacheable("POST"))
	assert.Equal(t, 30*time.Second, c.TTL)
	assert.Equal(t, "turf:cache", c.Prefix)

	t.Setenv("CACHE_TTL", "bogus")
	_, err = LoadCacheConfig()
	assert.Error(t, err)
}
