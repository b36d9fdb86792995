package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-priority-board/internal/config"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/kvstore"
	"github.com/KasumiMercury/primind-priority-board/internal/observability"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "priority-board"
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   logging.Environment(cfg.Env),
		LogLevel:      cfg.LogLevel,
		DefaultModule: logging.Module("priority-board"),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SamplingRate:  1.0,
	})
}

// initStore opens the configured document store. The caller owns Close.
func initStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		slog.Warn("memory store selected, data will not survive a restart")
		return kvstore.NewMemory(), nil

	case config.StoreBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			_ = redisClient.Close()
			slog.Error("failed to instrument redis tracing",
				slog.String("event", "redis.otel.tracing.fail"),
				slog.String("error", err.Error()),
			)
			return nil, err
		}

		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			_ = redisClient.Close()
			slog.Error("failed to instrument redis metrics",
				slog.String("event", "redis.otel.metrics.fail"),
				slog.String("error", err.Error()),
			)
			return nil, err
		}

		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("%w: %w", kvstore.ErrRedisConnection, err)
		}

		slog.Info("redis connected", slog.String("addr", cfg.Redis.Addr))
		return kvstore.NewRedis(redisClient, cfg.Redis.KeyPrefix), nil

	case config.StoreBackendSQLite:
		store, err := kvstore.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("sqlite store opened", slog.String("path", cfg.Store.SQLitePath))
		return store, nil

	default:
		return nil, fmt.Errorf("%w: %s", kvstore.ErrUnknownBackend, cfg.Store.Backend)
	}
}
