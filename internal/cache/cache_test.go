package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabled_BehavesAsEmpty(t *testing.T) {
	ctx := context.Background()
	c := Disabled()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestNilClient_IsSafe(t *testing.T) {
	var c *Client
	got, err := c.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnreachableRedis_FailsSafe(t *testing.T) {
	// Port 1 is reserved; nothing listens there.
	c := New(Options{Addr: "127.0.0.1:1"})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLiveRedis_RoundTrip(t *testing.T) {
	c := New(Options{Addr: "localhost:6379", Prefix: "taskmanager:test:"})
	defer c.Close()

	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	key := t.Name()
	assert.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	got, err := c.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// keys live under the prefix
	raw, err := c.client.Get(ctx, "taskmanager:test:"+key).Bytes()
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), raw)

	assert.NoError(t, c.Delete(ctx, key))
	got, err = c.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
