package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client, _ := setupTestRedis(t)
	now := time.Unix(1_700_000_000, 0)
	limiter := NewRedisRateLimiter(client, 3, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "availability:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "availability:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed, "4th request should be denied")
	assert.Equal(t, time.Minute, d.RetryAfter)

	d, err = limiter.Allow(ctx, "availability:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "other keys keep their own budget")
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	client, _ := setupTestRedis(t)
	now := time.Unix(1_700_000_000, 0)
	limiter := NewRedisRateLimiter(client, 1, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	d, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	now = now.Add(2 * time.Minute)
	d, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, 1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, limiter.Reset(ctx, "k"))

	d, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisRateLimiter_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, 1, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}
