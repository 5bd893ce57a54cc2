// Package redis provides the run-state cache: the externally observable
// mid-run progress of every run is mirrored here so the status endpoint can
// answer without touching PostgreSQL on the hot path.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/LeadScout/internal/config"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LeadScout/pkg/errors"
)

// Client wraps the go-redis client with the service configuration.
type Client struct {
	rdb    *redis.Client
	logger logging.Logger
}

// NewClient connects and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "redis connection failed")
	}

	log.Info("redis connected", logging.String("addr", cfg.Addr))
	return &Client{rdb: rdb, logger: log}, nil
}

// NewClientFromRedis wraps an existing go-redis client. Used by tests with
// miniredis.
func NewClientFromRedis(rdb *redis.Client, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{rdb: rdb, logger: log}
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "redis ping failed")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

//Personal.AI order the ending
