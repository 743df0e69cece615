package db

import (
	"context"
	"fmt"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/config"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/redisclient"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo/memory"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo/postgres"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo/redisstore"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo/sqlite"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

// OpenUsersRepo builds the users store selected by cfg.StoreDriver. The
// returned close func releases the underlying connection and is never nil.
func OpenUsersRepo(ctx context.Context, cfg config.Config) (repo.UsersRepo, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case "", DriverMemory:
		return memory.NewUsersRepo(), noop, nil

	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, noop, fmt.Errorf("%s driver: DATABASE_URL is empty", DriverPostgres)
		}
		if err := MigratePostgres(ctx, cfg.DatabaseURL); err != nil {
			return nil, noop, err
		}
		pool, err := NewPool(ctx, PoolConfig{
			URL:             cfg.DatabaseURL,
			MaxConns:        cfg.DBMaxConns,
			ApplicationName: cfg.ServiceName,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("db connect failed: %w", err)
		}
		return postgres.NewUsersRepo(pool), pool.Close, nil

	case DriverSQLite:
		conn, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := MigrateSQLite(ctx, conn); err != nil {
			conn.Close()
			return nil, noop, err
		}
		return sqlite.NewUsersRepo(conn), func() { _ = conn.Close() }, nil

	case DriverRedis:
		client := redisclient.New(redisclient.Config{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			PoolSize:   cfg.RedisPoolSize,
			ClientName: cfg.ServiceName,
		})
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.NewUsersRepo(client.Raw()), func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
