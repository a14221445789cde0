package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps the shared Redis client so every component reuses one
// connection pool.
type Client struct {
	*redis.Client
}

// NewClient creates a Redis client from a URL such as
// redis://localhost:6379 or redis://:password@host:6379/0.
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Client{Client: redis.NewClient(opts)}, nil
}

// Ping verifies the connection. Call it at startup to fail fast.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Connect creates a client and pings it.
func Connect(ctx context.Context, redisURL string) (*Client, error) {
	c, err := NewClient(redisURL)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
