package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		SetClient(nil)
		mr.Close()
	})
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func TestGetSetCached(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	_, ok := GetCached(ctx, "projects:all")
	assert.False(t, ok)

	SetCached(ctx, "projects:all", []byte(`[{"id":1}]`), time.Minute)

	data, ok := GetCached(ctx, "projects:all")
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	_, ok := GetCached(ctx, "anything")
	assert.False(t, ok)

	// None of these should panic without a client
	SetCached(ctx, "anything", []byte("x"), time.Minute)
	InvalidateProjectCaches(ctx)
	InvalidateWorkLogCaches(ctx)
	assert.False(t, IsHealthy())
}

func TestScheduleMonthKey(t *testing.T) {
	assert.Equal(t, "schedule:2026:03", ScheduleMonthKey(2026, 3))
	assert.Equal(t, "schedule:2026:11", ScheduleMonthKey(2026, 11))
}

func TestScheduleMonthCache(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	CacheScheduleMonth(ctx, 2026, 6, []byte(`{"visits":[]}`))

	data, ok := GetCachedScheduleMonth(ctx, 2026, 6)
	require.True(t, ok)
	assert.Equal(t, `{"visits":[]}`, string(data))

	_, ok = GetCachedScheduleMonth(ctx, 2026, 7)
	assert.False(t, ok)
}

func TestProjectInvalidationClearsSchedule(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	SetCached(ctx, "projects:all", []byte("a"), time.Minute)
	CacheScheduleMonth(ctx, 2026, 4, []byte("b"))
	SetCached(ctx, "worklogs:recent", []byte("c"), time.Minute)

	InvalidateProjectCaches(ctx)

	_, ok := GetCached(ctx, "projects:all")
	assert.False(t, ok)
	_, ok = GetCachedScheduleMonth(ctx, 2026, 4)
	assert.False(t, ok, "schedule is derived from projects and must be cleared")
	_, ok = GetCached(ctx, "worklogs:recent")
	assert.True(t, ok, "work log cache untouched by project invalidation")
}

func TestCachedAuth(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	_, ok := GetCachedAuth(ctx, "a@vert-paysage.fr", "secret")
	assert.False(t, ok)

	CacheAuth(ctx, "a@vert-paysage.fr", "secret", 42)

	id, ok := GetCachedAuth(ctx, "a@vert-paysage.fr", "secret")
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	// Different password misses
	_, ok = GetCachedAuth(ctx, "a@vert-paysage.fr", "wrong")
	assert.False(t, ok)

	InvalidateAuth(ctx, "a@vert-paysage.fr", "secret")
	_, ok = GetCachedAuth(ctx, "a@vert-paysage.fr", "secret")
	assert.False(t, ok)
}

func TestIsHealthy(t *testing.T) {
	mr := setupTestRedis(t)
	assert.True(t, IsHealthy())
	mr.Close()
	assert.False(t, IsHealthy())
}
