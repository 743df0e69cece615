package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns    = 5
	defaultConnectWait = 5 * time.Second
)

// PoolConfig tunes the users store pool; zero values fall back to defaults.
type PoolConfig struct {
	URL             string
	MaxConns        int32
	ApplicationName string
	ConnectTimeout  time.Duration
}

// poolConfig parses the DSN and applies pool sizing and the application
// name that shows up in pg_stat_activity.
func poolConfig(pc PoolConfig) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(pc.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = defaultMaxConns
	if pc.MaxConns > 0 {
		cfg.MaxConns = pc.MaxConns
	}

	if pc.ApplicationName != "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = pc.ApplicationName
	}

	return cfg, nil
}

// NewPool connects and pings before returning, so a bad DATABASE_URL fails
// at startup rather than on the first signup.
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(pc)
	if err != nil {
		return nil, err
	}

	wait := pc.ConnectTimeout
	if wait <= 0 {
		wait = defaultConnectWait
	}

	cctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(cctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
