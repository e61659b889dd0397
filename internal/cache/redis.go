package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const eventsListKey = "events:list"

type Config struct {
	Enabled  bool
	Addr     string
	Password string
	TTL      time.Duration
}

// Client caches the hot /events listing in Redis. A nil *Client is safe
// to keep in the handlers when caching is disabled.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: rdb, ttl: cfg.TTL}, nil
}

// NewClientWithRedis wraps an existing Redis client. Used in tests with
// miniredis.
func NewClientWithRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{client: rdb, ttl: ttl}
}

// GetEventsListRaw returns the cached listing as raw JSON so the handler
// can write it without re-marshaling.
func (c *Client) GetEventsListRaw(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, eventsListKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache miss for events list: %w", err)
	}
	return data, nil
}

// SetEventsList stores the listing with the configured TTL. Failures are
// swallowed: the cache is an optimization, never a dependency.
func (c *Client) SetEventsList(ctx context.Context, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, eventsListKey, payload, c.ttl)
}

// InvalidateEventsList drops the cached listing after an event mutation.
func (c *Client) InvalidateEventsList(ctx context.Context) {
	c.client.Del(ctx, eventsListKey)
}

func (c *Client) Close() error {
	return c.client.Close()
}
