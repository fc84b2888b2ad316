package redis

import (
	"context"
	"fmt"

	"github.com/jobber-ats/core/internal/config"
	"github.com/redis/go-redis/v9"
)

// Client wraps *redis.Client, used to cache the dashboard's expensive
// aggregate queries behind a short TTL.
type Client struct {
	*redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to Redis: %w", err)
	}

	return &Client{Client: rdb}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
