package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/travelsearch/internal/config"
	"github.com/dharmasatrya/travelsearch/internal/history"
	"github.com/dharmasatrya/travelsearch/internal/providers"
)

type closeTracker struct {
	*history.NoOpStore
	closed atomic.Bool
}

func (s *closeTracker) Close() error {
	s.closed.Store(true)
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return e
}

func TestRun_ShutsDownAndClosesStoreOnCancel(t *testing.T) {
	store := &closeTracker{NoOpStore: history.NewNoOpStore()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, newEcho(), "127.0.0.1:0", store) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	assert.True(t, store.closed.Load())
}

func TestRun_ListenErrorStillClosesStore(t *testing.T) {
	store := &closeTracker{NoOpStore: history.NewNoOpStore()}

	err := run(context.Background(), newEcho(), "127.0.0.1:-1", store)
	assert.Error(t, err)
	assert.True(t, store.closed.Load())
}

func TestNewRateLimiter_AppliesEngineOverrides(t *testing.T) {
	l := newRateLimiter(config.RateLimit{
		RequestsPerSecond: 100,
		BurstSize:         100,
		Hotels:            config.EngineRate{RequestsPerSecond: 0.001, BurstSize: 1},
	})

	require.NoError(t, l.Wait(context.Background(), providers.EngineHotels))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, providers.EngineHotels))
	assert.NoError(t, l.Wait(ctx, providers.EngineFlights))
}
