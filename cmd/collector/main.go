// Command collector runs the periodic fetch → normalize → store → rank loop
// against the analytics provider.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tokenradar/internal/cache"
	"tokenradar/internal/collector"
	"tokenradar/internal/config"
	"tokenradar/internal/observability"
	"tokenradar/internal/storage"
	chstore "tokenradar/internal/storage/clickhouse"
	"tokenradar/internal/storage/memory"
	"tokenradar/internal/storage/migrations"
	pgstore "tokenradar/internal/storage/postgres"
	"tokenradar/internal/tracker"
)

func main() {
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	noCache := flag.Bool("no-cache", false, "Disable the Redis ranking cache")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *useMemory, *noCache); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("collector failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, useMemory, noCache bool) error {
	metrics := observability.NewMetrics("")
	if cfg.Collector.MetricsAddr != "" {
		go serveMetrics(cfg.Collector.MetricsAddr, logger)
	}

	var (
		tokenStore    storage.TokenStore         = memory.NewTokenStore()
		walletStore   storage.WalletStore        = memory.NewWalletStore()
		snapshotStore storage.TokenSnapshotStore = memory.NewTokenSnapshotStore()
	)

	if !useMemory {
		pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN())
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		tokenStore = pgstore.NewTokenStore(pool)
		walletStore = pgstore.NewWalletStore(pool)

		conn, err := connectClickhouse(ctx, cfg.Clickhouse)
		if err != nil {
			return fmt.Errorf("connect to clickhouse: %w", err)
		}
		defer conn.Close()
		snapshotStore = chstore.NewTokenSnapshotStore(conn)
	}

	var rankingCache collector.RankingCache
	if !noCache {
		rc, err := cache.NewRankingCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			cache.WithTTL(cfg.Redis.TTL))
		if err != nil {
			// The cache is an optional read-side accelerator.
			logger.Warn("redis unavailable, rankings will not be cached", zap.Error(err))
		} else {
			defer rc.Close()
			rankingCache = rc
		}
	}

	client := tracker.NewHTTPClient(cfg.Tracker.BaseURL,
		tracker.WithAPIKey(cfg.Tracker.APIKey),
		tracker.WithTimeout(cfg.Tracker.RequestTimeout),
		tracker.WithMaxRetries(cfg.Tracker.MaxRetries),
		tracker.WithRetryDelay(cfg.Tracker.RetryDelay),
	)

	var watcher *collector.Watcher
	if cfg.Tracker.WSURL != "" {
		stream, err := tracker.NewStreamClient(ctx, cfg.Tracker.WSURL, nil)
		if err != nil {
			// Live statistics only densify the snapshot timeseries between
			// ticks; the periodic collection still works without them.
			logger.Warn("datastream unavailable, running without live snapshots", zap.Error(err))
		} else {
			defer stream.Close()
			watcher, err = collector.NewWatcher(stream, snapshotStore, logger, metrics)
			if err != nil {
				return err
			}
			defer watcher.Close()
		}
	}

	col, err := collector.New(collector.Options{
		Client:        client,
		TokenStore:    tokenStore,
		WalletStore:   walletStore,
		SnapshotStore: snapshotStore,
		Cache:         rankingCache,
		Watcher:       watcher,
		Logger:        logger,
		Metrics:       metrics,
		Interval:      cfg.Collector.Interval,
		Concurrency:   cfg.Collector.Concurrency,
		TokenLimit:    cfg.Collector.TokenLimit,
		TraderPages:   cfg.Collector.TraderPages,
		WatchLimit:    cfg.Collector.WatchLimit,
	})
	if err != nil {
		return err
	}

	logger.Info("collector starting",
		zap.Duration("interval", cfg.Collector.Interval),
		zap.Int("concurrency", cfg.Collector.Concurrency),
		zap.Bool("memoryStorage", useMemory),
	)
	return col.Run(ctx)
}

// connectClickhouse ensures the target database exists, then connects to it
// and applies migrations.
func connectClickhouse(ctx context.Context, cfg config.ClickhouseConfig) (*chstore.Conn, error) {
	admin, err := chstore.NewConnWithDatabase(ctx, cfg.DSN(), "")
	if err != nil {
		return nil, fmt.Errorf("connect clickhouse admin: %w", err)
	}
	if err := admin.Exec(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.Name)); err != nil {
		admin.Close()
		return nil, fmt.Errorf("create database %s: %w", cfg.Name, err)
	}
	if err := admin.Close(); err != nil {
		return nil, fmt.Errorf("close admin connection: %w", err)
	}

	conn, err := chstore.NewConn(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate clickhouse: %w", err)
	}
	return conn, nil
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	logger.Info("metrics server starting", zap.String("addr", addr))
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", zap.Error(err))
	}
}

func setupLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoding := "json"
	if format == "console" {
		encoding = "console"
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
