package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const counterKeyPrefix = "counter:"

// RedisCounterStore implements ticket.CounterStore with INCR, which is
// atomic on the server. Counters never expire.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Next(ctx context.Context, key string) (int64, error) {
	seq, err := s.client.Incr(ctx, counterKeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
	}
	return seq, nil
}

// Current returns the last issued value, or 0 when the key is unused.
func (s *RedisCounterStore) Current(ctx context.Context, key string) (int64, error) {
	seq, err := s.client.Get(ctx, counterKeyPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return seq, nil
}
