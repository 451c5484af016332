package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		hits          int
		wantAllowed   bool
		wantRemaining int
	}{
		{name: "first hit", limit: 3, hits: 1, wantAllowed: true, wantRemaining: 2},
		{name: "at limit", limit: 3, hits: 3, wantAllowed: true, wantRemaining: 0},
		{name: "over limit", limit: 3, hits: 4, wantAllowed: false, wantRemaining: 0},
		{name: "limit of one", limit: 1, hits: 2, wantAllowed: false, wantRemaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
			limiter := NewMemoryRateLimiter()
			limiter.now = clock.now

			var d Decision
			var err error
			for i := 0; i < tt.hits; i++ {
				d, err = limiter.Allow(context.Background(), "ip:contact", tt.limit, 15*time.Minute)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantRemaining, d.Remaining)
			assert.Equal(t, int64(tt.hits), d.Count)
			assert.Equal(t, time.Date(2025, 3, 1, 10, 15, 0, 0, time.UTC), d.ResetAt)
		})
	}
}

func TestMemoryRateLimiter_WindowRollsOver(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 10, 14, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter()
	limiter.now = clock.now
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "k", 2, 15*time.Minute)
		require.NoError(t, err)
	}
	d, err := limiter.Allow(ctx, "k", 2, 15*time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	clock.advance(2 * time.Minute)
	d, err = limiter.Allow(ctx, "k", 2, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(1), d.Count)
}

func TestMemoryRateLimiter_KeysAreIndependentAndResettable(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	ctx := context.Background()

	d, _ := limiter.Allow(ctx, "a", 1, time.Minute)
	assert.True(t, d.Allowed)
	d, _ = limiter.Allow(ctx, "a", 1, time.Minute)
	assert.False(t, d.Allowed)

	d, _ = limiter.Allow(ctx, "b", 1, time.Minute)
	assert.True(t, d.Allowed)

	require.NoError(t, limiter.Reset(ctx, "a"))
	d, _ = limiter.Allow(ctx, "a", 1, time.Minute)
	assert.True(t, d.Allowed)
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d, err := limiter.Allow(ctx, "fp:login", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 3-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "fp:login", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	keys, err := client.Keys(ctx, "ratelimit:fp:login:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	ttl, err := client.TTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute+time.Second)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "fp:register", 1, time.Minute)
	require.NoError(t, err)
	d, err := limiter.Allow(ctx, "fp:register", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	require.NoError(t, limiter.Reset(ctx, "fp:register"))
	d, err = limiter.Allow(ctx, "fp:register", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
