package cache

import (
	"context"
	"fleet-route-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisLegCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisLegCache(rdb, ttl), mr
}

func TestRedisLegCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	err := c.PutMany(ctx, "46.056900,14.505800", map[string]ports.Leg{
		"46.060000,14.510000": {DistanceMeters: 812.5, DurationSeconds: 97},
		"46.050000,14.500000": {DistanceMeters: 1204, DurationSeconds: 131.25},
	})
	require.NoError(t, err)

	got, err := c.GetMany(ctx, "46.056900,14.505800", []string{
		"46.060000,14.510000",
		"46.050000,14.500000",
		"46.070000,14.520000",
		"46.060000,14.510000",
		" ",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]ports.Leg{
		"46.060000,14.510000": {DistanceMeters: 812.5, DurationSeconds: 97},
		"46.050000,14.500000": {DistanceMeters: 1204, DurationSeconds: 131.25},
	}, got)
}

func TestRedisLegCacheMissingOrigin(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)

	got, err := c.GetMany(context.Background(), "1.000000,1.000000", []string{"2.000000,2.000000"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisLegCacheExpires(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, "a", map[string]ports.Leg{"b": {DistanceMeters: 1, DurationSeconds: 1}}))
	assert.Equal(t, time.Minute, mr.TTL(legKeyPrefix+"a"))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, "a", []string{"b"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisLegCacheRejectsCorruptValues(t *testing.T) {
	c, mr := newTestRedisCache(t, 0)
	mr.HSet(legKeyPrefix+"a", "b", "not-a-leg")

	_, err := c.GetMany(context.Background(), "a", []string{"b"})
	assert.Error(t, err)
}

func TestRedisLegCacheValidates(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	ctx := context.Background()

	_, err := c.GetMany(ctx, "", []string{"b"})
	assert.Error(t, err)
	assert.Error(t, c.PutMany(ctx, "", map[string]ports.Leg{"b": {}}))
	assert.Error(t, c.PutMany(ctx, "a", map[string]ports.Leg{"": {}}))
	assert.NoError(t, c.PutMany(ctx, "a", nil))
}

func TestUniqueKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueKeys([]string{" a", "b", "a", "", "b "}))
}
