// Package pagination implements the offset pagination contract shared by the
// query service and the transport layer: parameter clamping, offset and page
// arithmetic, and the metadata envelope returned to clients.
package pagination

import (
	envconfig "sports-articles/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Page used when the caller omits one
	DefaultLimit int // Items per page when the caller omits a limit
	MaxLimit     int // Upper bound applied to every limit
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, limit=10, max=50
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 10,
		MaxLimit:     50,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page
//
// Values that would make the contract inconsistent (non-positive limits, a
// default above the maximum) fall back to DefaultConfig().
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  def.DefaultPage,
		DefaultLimit: envconfig.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     envconfig.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.MaxLimit < 1 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.DefaultLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(def.DefaultLimit, cfg.MaxLimit)
	}
	return cfg
}
