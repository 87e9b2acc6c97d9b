package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Tracker.BaseURL == "" {
		t.Error("tracker base URL default missing")
	}
	if cfg.Collector.Interval <= 0 {
		t.Errorf("collector interval = %v, want > 0", cfg.Collector.Interval)
	}
	if cfg.Collector.Concurrency <= 0 {
		t.Errorf("collector concurrency = %d, want > 0", cfg.Collector.Concurrency)
	}
	if cfg.Redis.TTL != 5*time.Minute {
		t.Errorf("redis TTL = %v, want 5m", cfg.Redis.TTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRACKER_API_KEY", "secret")
	t.Setenv("COLLECTOR_INTERVAL", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Tracker.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.Tracker.APIKey)
	}
	if cfg.Collector.Interval != 30*time.Second {
		t.Errorf("interval = %v, want 30s", cfg.Collector.Interval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestDSNFormats(t *testing.T) {
	pg := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "radar", SSLMode: "disable"}
	want := "postgres://u:p@db:5432/radar?sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("postgres dsn = %q, want %q", got, want)
	}

	ch := ClickhouseConfig{Host: "ch", Port: 9000, User: "default", Password: "", Name: "radar"}
	want = "clickhouse://default:@ch:9000/radar"
	if got := ch.DSN(); got != want {
		t.Errorf("clickhouse dsn = %q, want %q", got, want)
	}
}
