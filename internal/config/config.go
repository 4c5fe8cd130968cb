// Package config loads the API server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (optionally seeded from a .env file).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"sports-articles/internal/handler/http/middleware"
	infradb "sports-articles/internal/infra/db"
	"sports-articles/internal/observability/logging"
	envconfig "sports-articles/pkg/config"
)

// Config is the full server configuration.
type Config struct {
	Version    string           `yaml:"version"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Pagination PaginationConfig `yaml:"pagination"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Breaker    BreakerConfig    `yaml:"breaker"`
	Log        LogConfig        `yaml:"log"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	TrustedProxies  []string      `yaml:"trusted_proxies"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAge         int      `yaml:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	IdleTTL           time.Duration `yaml:"idle_ttl"`
}

type BreakerConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MinRequests uint32        `yaml:"min_requests"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Version: "dev",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Database: DatabaseConfig{
			Driver:          string(infradb.DialectPostgres),
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 50},
		CORS:       CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 600},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
			IdleTTL:           10 * time.Minute,
		},
		Breaker: BreakerConfig{Timeout: 30 * time.Second, MinRequests: 5},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 7,
		},
		Tracing: TracingConfig{ServiceName: "sports-articles", SampleRatio: 1.0},
	}
}

// LoadDotEnv loads the given .env files into the environment. Missing files
// are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the YAML file at path (when
// non-empty) and the environment, then validates it. Warnings describe
// settings that work but deserve attention.
// The path parameter comes from a trusted source (CLI flag or CONFIG_FILE).
func Load(path string) (cfg *Config, warnings []string, err error) {
	cfg = Default()

	if path != "" {
		// #nosec G304 -- path is provided by the operator, not request input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	warnings, err = cfg.Validate()
	if err != nil {
		return nil, warnings, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, warnings, nil
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	c.Version = envconfig.GetEnvString("VERSION", c.Version)

	c.HTTP.Addr = envconfig.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HTTP_ADDR") == "" {
		c.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	c.HTTP.RequestTimeout = envconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)
	c.HTTP.ShutdownTimeout = envconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.HTTP.MaxBodyBytes = int64(envconfig.GetEnvInt("HTTP_MAX_BODY_BYTES", int(c.HTTP.MaxBodyBytes)))
	c.HTTP.TrustedProxies = envconfig.GetEnvStringList("TRUSTED_PROXIES", c.HTTP.TrustedProxies)

	c.Database.Driver = envconfig.GetEnvString("DB_DRIVER", c.Database.Driver)
	c.Database.URL = envconfig.GetEnvString("DATABASE_URL", c.Database.URL)
	c.Database.MaxOpenConns = envconfig.GetEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = envconfig.GetEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = envconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)
	c.Database.ConnMaxIdleTime = envconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", c.Database.ConnMaxIdleTime)

	c.Pagination.DefaultLimit = envconfig.GetEnvInt("PAGINATION_DEFAULT_LIMIT", c.Pagination.DefaultLimit)
	c.Pagination.MaxLimit = envconfig.GetEnvInt("PAGINATION_MAX_LIMIT", c.Pagination.MaxLimit)

	c.CORS.AllowedOrigins = envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)

	c.RateLimit.Enabled = envconfig.GetEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerSecond = envconfig.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = envconfig.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)
	c.Log.File = envconfig.GetEnvString("LOG_FILE", c.Log.File)

	c.Tracing.Enabled = envconfig.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.SampleRatio = envconfig.GetEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)
}

// Validate reports fatal problems as an error and recoverable ones as
// warnings. Recoverable values are corrected in place.
func (c *Config) Validate() (warnings []string, err error) {
	var errs []error

	switch infradb.Dialect(c.Database.Driver) {
	case infradb.DialectPostgres, infradb.DialectSQLite:
	default:
		errs = append(errs, fmt.Errorf("database driver %q is not supported (use postgres or sqlite)", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		errs = append(errs, errors.New("database url is required (DATABASE_URL)"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http addr is required"))
	}
	if _, err := middleware.ParseTrustedProxies(c.HTTP.TrustedProxies); err != nil {
		errs = append(errs, err)
	}

	if c.Pagination.MaxLimit < 1 {
		warnings = append(warnings, fmt.Sprintf("pagination max_limit %d is invalid, using 50", c.Pagination.MaxLimit))
		c.Pagination.MaxLimit = 50
	}
	if c.Pagination.DefaultLimit < 1 || c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		fixed := min(10, c.Pagination.MaxLimit)
		warnings = append(warnings, fmt.Sprintf("pagination default_limit %d is out of range, using %d", c.Pagination.DefaultLimit, fixed))
		c.Pagination.DefaultLimit = fixed
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		warnings = append(warnings, "rate limit has no positive rate or burst, disabling it")
		c.RateLimit.Enabled = false
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		warnings = append(warnings, fmt.Sprintf("tracing sample_ratio %v is outside [0,1], using 1", c.Tracing.SampleRatio))
		c.Tracing.SampleRatio = 1
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		warnings = append(warnings, "shutdown_timeout: "+err.Error()+", using 10s")
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if len(c.CORS.AllowedOrigins) == 1 && c.CORS.AllowedOrigins[0] == "*" {
		warnings = append(warnings, "CORS allows every origin")
	}

	return warnings, errors.Join(errs...)
}

// Options converts the log section for logging.New.
func (l LogConfig) Options() logging.Options {
	return logging.Options{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

// DBConfig converts the database section for infra/db.Open.
func (c *Config) DBConfig() infradb.Config {
	return infradb.Config{
		Dialect: infradb.Dialect(c.Database.Driver),
		DSN:     c.Database.URL,
		Pool: infradb.ConnectionConfig{
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
			ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		},
	}
}
