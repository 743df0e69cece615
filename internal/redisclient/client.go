// Package redisclient owns the go-redis client used by the redis users store.
package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize = 10
	ioTimeout       = 2 * time.Second
)

type Client struct {
	redisdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// ClientName is sent with CLIENT SETNAME so connections are
	// identifiable in CLIENT LIST.
	ClientName string
}

func options(cfg Config) *redis.Options {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   cfg.ClientName,
		PoolSize:     poolSize,
		DialTimeout:  ioTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

func New(cfg Config) *Client {
	return &Client{redisdb: redis.NewClient(options(cfg))}
}

// Ping fails fast when the store is unreachable at startup.
func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

// Raw exposes the underlying client to the store layer.
func (c *Client) Raw() *redis.Client {
	return c.redisdb
}
