// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	// Analytics provider configuration
	Tracker TrackerConfig

	// PostgreSQL configuration (canonical entities)
	Postgres PostgresConfig

	// ClickHouse configuration (snapshot timeseries)
	Clickhouse ClickhouseConfig

	// Redis configuration (ranking cache)
	Redis RedisConfig

	// Collector configuration
	Collector CollectorConfig

	// Logging configuration
	Log LogConfig
}

// TrackerConfig holds analytics provider API settings.
type TrackerConfig struct {
	BaseURL string `envconfig:"TRACKER_BASE_URL" default:"https://data.solanatracker.io"`
	// WSURL enables the live statistics stream when set.
	WSURL          string        `envconfig:"TRACKER_WS_URL" default:""`
	APIKey         string        `envconfig:"TRACKER_API_KEY" default:""`
	RequestTimeout time.Duration `envconfig:"TRACKER_REQUEST_TIMEOUT" default:"30s"`
	MaxRetries     int           `envconfig:"TRACKER_MAX_RETRIES" default:"3"`
	RetryDelay     time.Duration `envconfig:"TRACKER_RETRY_DELAY" default:"1s"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"tokenradar"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"tokenradar"`
	Name     string `envconfig:"POSTGRES_DB" default:"tokenradar"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
}

// DSN returns the PostgreSQL connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// ClickhouseConfig holds ClickHouse connection settings.
type ClickhouseConfig struct {
	Host     string `envconfig:"CLICKHOUSE_HOST" default:"localhost"`
	Port     int    `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	User     string `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	Name     string `envconfig:"CLICKHOUSE_DB" default:"tokenradar"`
}

// DSN returns the ClickHouse connection string (native protocol).
func (c ClickhouseConfig) DSN() string {
	return fmt.Sprintf("clickhouse://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_RANKING_TTL" default:"5m"`
}

// CollectorConfig holds collector loop settings.
type CollectorConfig struct {
	Interval    time.Duration `envconfig:"COLLECTOR_INTERVAL" default:"2m"`
	Concurrency int           `envconfig:"COLLECTOR_CONCURRENCY" default:"8"`
	TokenLimit  int           `envconfig:"COLLECTOR_TOKEN_LIMIT" default:"100"`
	TraderPages int           `envconfig:"COLLECTOR_TRADER_PAGES" default:"1"`
	WatchLimit  int           `envconfig:"COLLECTOR_WATCH_LIMIT" default:"20"`
	MetricsAddr string        `envconfig:"COLLECTOR_METRICS_ADDR" default:":9091"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return &cfg, nil
}
