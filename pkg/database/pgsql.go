package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectTimeout    = 5 * time.Second
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = time.Minute
)

// NewPgxPool opens a pgx pool for databaseURL. Pool sizing comes from the URL
// (pool_max_conns, pool_min_conns) when present. With checkConnection set the
// pool is pinged once and closed again on failure.
func NewPgxPool(ctx context.Context, databaseURL string, checkConnection bool, logger *slog.Logger) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.ConnConfig.ConnectTimeout = connectTimeout
	cfg.MaxConnIdleTime = maxConnIdleTime
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if checkConnection {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	logger.Info("PostgreSQL pool ready",
		slog.String("host", cfg.ConnConfig.Host),
		slog.String("database", cfg.ConnConfig.Database),
		slog.Int("max_conns", int(cfg.MaxConns)))
	return pool, nil
}

// ClosePgxPool closes pool if it was opened.
func ClosePgxPool(pool *pgxpool.Pool, logger *slog.Logger) {
	if pool == nil {
		return
	}
	pool.Close()
	logger.Info("PostgreSQL pool closed")
}
