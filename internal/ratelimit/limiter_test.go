package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitWithinBurst(t *testing.T) {
	l := NewProviderLimiter(Config{RequestsPerSecond: 1, BurstSize: 3})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(ctx, "amadeus"))
	}
}

func TestWaitBlocksWhenExhausted(t *testing.T) {
	l := NewProviderLimiter(Config{RequestsPerSecond: 0.1, BurstSize: 1})

	require.NoError(t, l.Wait(context.Background(), "amadeus"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "amadeus")
	assert.Error(t, err)
}

func TestLimitersAreIndependentPerProvider(t *testing.T) {
	l := NewProviderLimiter(Config{RequestsPerSecond: 0.1, BurstSize: 1})

	require.NoError(t, l.Wait(context.Background(), "amadeus"))

	// A starved amadeus bucket must not delay rapidapi.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, l.Wait(ctx, "rapidapi"))
}

func TestNewFromConfigOverrides(t *testing.T) {
	l := NewFromConfig(Config{RequestsPerSecond: 0.1, BurstSize: 1}, map[string]Config{
		"rapidapi": {RequestsPerSecond: 100, BurstSize: 5},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(ctx, "rapidapi"))
	}
}
