package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func TestDrainThenClose_ClosesResourcesAfterServerDrains(t *testing.T) {
	var calls callLog
	release := make(chan struct{})

	op := drainThenClose(
		func(ctx context.Context) error {
			<-release
			calls.record("http-server")
			return nil
		},
		resource{name: "database", close: func() error { calls.record("database"); return nil }},
		resource{name: "redis", close: func() error { calls.record("redis"); return nil }},
	)

	done := make(chan error, 1)
	go func() { done <- op(context.Background()) }()

	// While requests are still draining nothing else may close.
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, calls.snapshot())

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("shutdown did not finish")
	}
	assert.Equal(t, []string{"http-server", "database", "redis"}, calls.snapshot())
}

func TestDrainThenClose_ReportsEveryFailure(t *testing.T) {
	var calls callLog
	drainErr := errors.New("drain deadline exceeded")
	dbErr := errors.New("db close failed")

	op := drainThenClose(
		func(ctx context.Context) error { calls.record("http-server"); return drainErr },
		resource{name: "database", close: func() error { calls.record("database"); return dbErr }},
		resource{name: "redis", close: func() error { calls.record("redis"); return nil }},
	)

	err := op(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, drainErr)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "database: db close failed")
	assert.Equal(t, []string{"http-server", "database", "redis"}, calls.snapshot())
}
