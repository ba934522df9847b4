// Package config loads the service configuration from a TOML file and
// the process environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"calq-destination-service/internal/events/core/domain"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultListen          = ":8080"
	defaultEndpoint        = "https://api.calq.io"
	defaultRetries         = 3
	defaultTimeout         = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultShutdownTimeout = 5 * time.Second
	defaultMaxOpenConns    = 20
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 30 * time.Minute
)

// Duration wraps time.Duration for TOML parsing ("5s", "1m").
type Duration struct {
	time.Duration
}

// UnmarshalText parses TOML duration values.
func (d *Duration) UnmarshalText(text []byte) error {
	value := strings.TrimSpace(string(text))
	if value == "" {
		d.Duration = 0
		return nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value, err)
	}

	d.Duration = parsed
	return nil
}

type Config struct {
	Calq     CalqConfig     `toml:"calq"`
	Server   ServerConfig   `toml:"server"`
	Postgres PostgresConfig `toml:"postgres"`
	Log      LogConfig      `toml:"log"`
}

type CalqConfig struct {
	WriteKey string   `toml:"write_key"`
	Endpoint string   `toml:"endpoint"`
	Retries  int      `toml:"retries"`
	Timeout  Duration `toml:"timeout"`
	Channels []string `toml:"channels"`
}

type ServerConfig struct {
	Listen          string   `toml:"listen"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// PostgresConfig enables the delivery log when DSN is set.
type PostgresConfig struct {
	DSN             string   `toml:"dsn"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Enabled reports whether a database is configured.
func (p PostgresConfig) Enabled() bool {
	return p.DSN != ""
}

// Settings returns the destination settings for the dispatcher.
func (c CalqConfig) Settings() domain.Settings {
	return domain.Settings{
		WriteKey: c.WriteKey,
		Channels: append([]string(nil), c.Channels...),
	}
}

// Load reads path (optional), applies env overrides and defaults and validates
// the result. An empty path means environment-only configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := toml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
			return nil, fmt.Errorf("decode TOML %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"CALQ_WRITE_KEY", &c.Calq.WriteKey},
		{"CALQ_ENDPOINT", &c.Calq.Endpoint},
		{"POSTGRES_DSN", &c.Postgres.DSN},
		{"LISTEN_ADDR", &c.Server.Listen},
		{"LOG_LEVEL", &c.Log.Level},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(v) != "" {
			*o.dst = strings.TrimSpace(v)
		}
	}
}

func (c *Config) applyDefaults() {
	c.Calq.WriteKey = strings.TrimSpace(c.Calq.WriteKey)
	c.Calq.Endpoint = strings.TrimRight(strings.TrimSpace(c.Calq.Endpoint), "/")
	if c.Calq.Endpoint == "" {
		c.Calq.Endpoint = defaultEndpoint
	}
	if c.Calq.Retries == 0 {
		c.Calq.Retries = defaultRetries
	}
	if c.Calq.Timeout.Duration == 0 {
		c.Calq.Timeout.Duration = defaultTimeout
	}
	if len(c.Calq.Channels) == 0 {
		c.Calq.Channels = append([]string(nil), domain.DefaultChannels...)
	}

	if c.Server.Listen == "" {
		c.Server.Listen = defaultListen
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = defaultShutdownTimeout
	}

	if c.Postgres.MaxOpenConns == 0 {
		c.Postgres.MaxOpenConns = defaultMaxOpenConns
	}
	if c.Postgres.MaxIdleConns == 0 {
		c.Postgres.MaxIdleConns = defaultMaxIdleConns
	}
	if c.Postgres.ConnMaxLifetime.Duration == 0 {
		c.Postgres.ConnMaxLifetime.Duration = defaultConnMaxLifetime
	}

	c.Log.Level = lowerOrDefault(c.Log.Level, defaultLogLevel)
	c.Log.Format = lowerOrDefault(c.Log.Format, defaultLogFormat)
}

func (c *Config) validate() error {
	if c.Calq.WriteKey == "" {
		return fmt.Errorf("calq.write_key: %w", domain.ErrMissingWriteKey)
	}
	if c.Calq.Retries < 0 {
		return fmt.Errorf("calq.retries: must be positive, got %d", c.Calq.Retries)
	}
	if c.Calq.Timeout.Duration < 0 {
		return fmt.Errorf("calq.timeout: must be positive, got %s", c.Calq.Timeout.Duration)
	}
	if !strings.HasPrefix(c.Calq.Endpoint, "http://") && !strings.HasPrefix(c.Calq.Endpoint, "https://") {
		return fmt.Errorf("calq.endpoint: unsupported scheme in %q", c.Calq.Endpoint)
	}
	if err := validateLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := validateLogFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unsupported value %q", level)
	}
}

func validateLogFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported value %q", format)
	}
}

func lowerOrDefault(value, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return fallback
	}
	return normalized
}
