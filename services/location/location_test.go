package location

import (
	"context"
	"testing"
	"time"

	"github.com/HilomPH/Hilom-Backend/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redis, err := services.NewRedisService(&services.RedisConfig{
		Host: mr.Host(),
		Port: mr.Port(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { redis.Close() })

	return NewCache(redis, ttl), mr
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, cache.Put(ctx, 42, Snapshot{Latitude: 14.5995, Longitude: 120.9842, RecordedAt: at}))

	snap, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.InDelta(t, 14.5995, snap.Latitude, 1e-9)
	assert.InDelta(t, 120.9842, snap.Longitude, 1e-9)
	assert.True(t, snap.RecordedAt.Equal(at))
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	snap, err := cache.Get(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, cache.Put(ctx, 42, Snapshot{Latitude: 14.5995, Longitude: 120.9842, RecordedAt: time.Now()}))

	mr.FastForward(2 * time.Minute)

	snap, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	require.NoError(t, cache.Put(ctx, 42, Snapshot{Latitude: 14.0, Longitude: 120.0, RecordedAt: time.Now()}))
	require.NoError(t, cache.Put(ctx, 42, Snapshot{Latitude: 15.0, Longitude: 121.0, RecordedAt: time.Now()}))

	snap, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.InDelta(t, 15.0, snap.Latitude, 1e-9)
	assert.InDelta(t, 121.0, snap.Longitude, 1e-9)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	require.NoError(t, cache.Put(ctx, 42, Snapshot{Latitude: 14.0, Longitude: 120.0, RecordedAt: time.Now()}))
	require.NoError(t, cache.Delete(ctx, 42))

	snap, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, snap)
}
