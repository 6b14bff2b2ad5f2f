package config

import (
    "fmt"
    "strings"
    "time"

    "github.com/kelseyhightower/envconfig"
)

// CacheConfig defines settings for the response cache middleware, read from
// CACHE_<FIELD>.  When Enabled is false or no Redis client is configured,
// caching is disabled.  Slot grids reflect pricing edits once their entry
// expires, so TTL is kept short.  KeyStrategy determines which parts of the
// request contribute to the cache key.
type CacheConfig struct {
    Enabled      bool          `default:"true"`
    Methods      []string      `default:"GET"`
    TTL          time.Duration `default:"30s"`
    KeyStrategy  string        `split_words:"true" default:"route_query"`
    Prefix       string        `default:"turf:cache"`
    MaxBodyBytes int           `split_words:"true" default:"1048576"`
}

// LoadCacheConfig reads the cache settings from the environment.
func LoadCacheConfig() (CacheConfig, error) {
    var c CacheConfig
    if err := envconfig.Process("CACHE", &c); err != nil {
        return CacheConfig{}, fmt.Errorf("cache config: %w", err)
    }
    return c, nil
}

// Cacheable reports whether responses to method may be cached.
func (c CacheConfig) Cacheable(method string) bool {
    for _, m := range c.Methods {
        if strings.EqualFold(strings.TrimSpace(m), method) {
            return true
        }
    }
    return false
}
