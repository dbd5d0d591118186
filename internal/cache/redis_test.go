package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	store, err := NewRedisStore(RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	key := Key(sampleQuery())

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, key, samplePayload(), time.Minute))

	payload, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "amadeus", payload.Provider)
	require.Len(t, payload.Records, 1)
	assert.Equal(t, 199.50, payload.Records[0].Price.Amount)
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	key := Key(sampleQuery())

	require.NoError(t, store.Set(ctx, key, samplePayload(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	key := Key(sampleQuery())

	require.NoError(t, store.Set(ctx, key, samplePayload(), time.Minute))
	require.NoError(t, store.Invalidate(ctx, key))

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreBackendDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	key := Key(sampleQuery())

	mr.Close()

	_, found, err := store.Get(ctx, key)
	assert.Error(t, err)
	assert.False(t, found)

	assert.Error(t, store.Set(ctx, key, samplePayload(), time.Minute))
	assert.Error(t, store.Ping(ctx))
}

func TestRedisStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	key := Key(sampleQuery())

	require.NoError(t, mr.Set(key, "not json"))

	_, found, err := store.Get(ctx, key)
	assert.Error(t, err)
	assert.False(t, found)
}
