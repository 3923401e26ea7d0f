// Package config loads runtime configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the knobs for the HTTP server, persistence, cache, rate
// limiting and the stock update processor.
type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	RedisAddr          string
	ProcessingInterval time.Duration
	DefaultPageSize    int
	MaxPageSize        int
	CacheTTL           time.Duration
	ShutdownTimeout    time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables, falling back to
// defaults. DATABASE_URL and REDIS_ADDR are optional; leaving them empty
// selects the in-memory repository and disables the cache.
func Load() Config {
	v := viper.New()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("processing_interval", "2s")
	v.SetDefault("default_page_size", 10)
	v.SetDefault("max_page_size", 100)
	v.SetDefault("cache_ttl", "30s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.AutomaticEnv()

	return Config{
		HTTPAddr:           v.GetString("http_addr"),
		DatabaseURL:        v.GetString("database_url"),
		RedisAddr:          v.GetString("redis_addr"),
		ProcessingInterval: v.GetDuration("processing_interval"),
		DefaultPageSize:    v.GetInt("default_page_size"),
		MaxPageSize:        v.GetInt("max_page_size"),
		CacheTTL:           v.GetDuration("cache_ttl"),
		ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
		RateLimitRPS:       v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:     v.GetInt("rate_limit_burst"),
	}
}
