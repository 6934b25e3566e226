package model

import (
	"runtime"
	"time"
)

// Config holds all Merchant settings
type Config struct {
	Session      SessionConfig      `yaml:"session" mapstructure:"session"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// SessionConfig controls how lines are read and replies are written
type SessionConfig struct {
	EchoSuccess bool   `yaml:"echo_success" mapstructure:"echo_success"` // Write an empty line for silent statements
	StopWord    string `yaml:"stop_word" mapstructure:"stop_word"`       // Case-insensitive line that ends the session
	Farewell    string `yaml:"farewell" mapstructure:"farewell"`         // Written when the session ends
	Prompt      string `yaml:"prompt" mapstructure:"prompt"`             // Written before each line is read
}

// CacheConfig controls memoization of numeral conversions
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles how fast batch sessions start
type RateLimitingConfig struct {
	SessionsPerSecond float64 `yaml:"sessions_per_second" mapstructure:"sessions_per_second"` // 0 disables throttling
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls where batch transcripts go
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			EchoSuccess: false,
			StopWord:    "stop",
			Farewell:    "Bye! See you soon!",
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		RateLimiting: RateLimitingConfig{
			SessionsPerSecond: 0,
			BurstSize:         5,
		},
		Output: OutputConfig{
			Dir: "./merchant-transcripts",
		},
	}
}
