package config

import (
    "fmt"
    "time"

    "github.com/kelseyhightower/envconfig"
)

// RateLimitConfig drives the token-bucket middleware.  Every field is read
// from RATE_LIMIT_<FIELD>; Burst and RefillEvery are shorthands that
// override Capacity and the refill pair when set.
type RateLimitConfig struct {
    Enabled        bool          `default:"true"`
    Capacity       int           `default:"60"`
    RefillTokens   int           `split_words:"true" default:"1"`
    RefillInterval time.Duration `split_words:"true" default:"1s"`
    TTL            time.Duration `default:"10m"`
    KeyStrategy    string        `split_words:"true" default:"ip_user_route"`
    Prefix         string        `default:"turf:rl"`
    Debug          bool

    Burst       int
    RefillEvery time.Duration `split_words:"true"`
}

// LoadRateLimitConfig reads the limiter settings from the environment.
func LoadRateLimitConfig() (RateLimitConfig, error) {
    var c RateLimitConfig
    if err := envconfig.Process("RATE_LIMIT", &c); err != nil {
        return RateLimitConfig{}, fmt.Errorf("rate limit config: %w", err)
    }
    if c.Burst > 0 {
        c.Capacity = c.Burst
    }
    if c.RefillEvery > 0 {
        c.RefillTokens = 1
        c.RefillInterval = c.RefillEvery
    }
    return c.normalized(), nil
}

// normalized clamps values the limiter cannot work with.
func (c RateLimitConfig) normalized() RateLimitConfig {
    if c.Capacity < 1 { c.Capacity = 1 }
    if c.RefillTokens < 1 { c.RefillTokens = 1 }
    if c.RefillInterval <= 0 { c.RefillInterval = time.Second }
    if minTTL := 5 * c.RefillInterval; c.TTL < minTTL { c.TTL = minTTL }
    return c
}
