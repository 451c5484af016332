package cache

import (
	"context"
	"sync"
	"testing"

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

func TestRedisCounterStore_Sequential(t *testing.T) {
	store := NewRedisCounterStore(setupTestRedis(t))
	ctx := context.Background()

	current, err := store.Current(ctx, "ticket_202501")
	require.NoError(t, err)
	assert.Zero(t, current)

	for want := int64(1); want <= 3; want++ {
		got, err := store.Next(ctx, "ticket_202501")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := store.Next(ctx, "ticket_202502")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "a new month starts at 1")
}

func TestRedisCounterStore_Concurrent(t *testing.T) {
	store := NewRedisCounterStore(setupTestRedis(t))
	ctx := context.Background()

	const workers = 100
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := store.Next(ctx, "govreq_202503")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers)
}
