package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures a Client. Prefix namespaces every key so several
// deployments can share one redis database.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Client is a fail-safe key/value store on top of redis. Lookups that fail
// are reported as misses and failed writes are logged and dropped.
// A nil *Client, or one built with Disabled, behaves like an always-empty store.
type Client struct {
	client *redis.Client
	prefix string
}

// New creates a new Redis client.
func New(opts Options) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		prefix: opts.Prefix,
	}
}

// Disabled returns a client that stores nothing.
func Disabled() *Client {
	return &Client{}
}

func (c *Client) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

// Ping reports whether redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if !c.enabled() {
		return errors.New("redis disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Get returns the stored value, or nil on a miss or when redis is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.enabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		log.Printf("cache get %s: %v", key, err)
		return nil, nil
	}
	return res, nil
}

// Set stores value under key for ttl.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.enabled() {
		return nil
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
	return nil
}

// Delete removes key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.enabled() {
		return nil
	}
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		log.Printf("cache delete %s: %v", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.client.Close()
}
