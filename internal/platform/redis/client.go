// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the single shared client of the revocation store.

The client is created once at startup and injected into every component that
talks to Redis. Handlers never dial their own connections.

Core Responsibilities:

  - Pooling: One bounded connection pool for the whole process.
  - Timeouts: Dial, read and write deadlines so a stalled server fails fast.
  - Fail Fast: Connectivity is validated before the server accepts traffic.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/fleetadmin/internal/platform/constants"
)

// Options parses a Redis URL and applies the pool and timeout settings.
func Options(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = constants.RedisPoolSize
	options.MinIdleConns = 2
	options.MaxIdleConns = 5

	options.DialTimeout = constants.RedisDialTimeout
	options.ReadTimeout = constants.RedisIOTimeout
	options.WriteTimeout = constants.RedisIOTimeout

	// A failed command surfaces immediately; callers decide, nobody retries.
	options.MaxRetries = -1

	return options, nil
}

// NewClient parses a Redis URL and returns a ready-to-use pooled client.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: Redis connection URL.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	// Validate connectivity immediately at startup.
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, constants.ReadinessTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
