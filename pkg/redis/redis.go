// Package redis opens the Redis connection used for session storage.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrParseURL      = errors.New("redis: failed to parse connection URL")
	ErrConnectFailed = errors.New("redis: failed to connect")
)

// Open connects to Redis using a redis:// or rediss:// URL and verifies
// the connection with a ping before returning the client.
func Open(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Join(ErrParseURL, err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.ConnMaxIdleTime = 10 * time.Minute
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrConnectFailed, err)
	}

	return client, nil
}
