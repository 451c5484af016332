package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryBucket struct {
	start time.Time
	count int64
}

// MemoryRateLimiter keeps counters in process. It is used when Redis is not
// configured, so limits are per instance.
type MemoryRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*memoryBucket),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	now := l.now()
	start := windowStart(now, window)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now, window)

	b, ok := l.buckets[key]
	if !ok || !b.start.Equal(start) {
		b = &memoryBucket{start: start}
		l.buckets[key] = b
	}
	b.count++
	return decide(b.count, limit, start.Add(window)), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.buckets {
		if k == key || strings.HasPrefix(k, key+":") {
			delete(l.buckets, k)
		}
	}
	return nil
}

// sweep drops stale buckets at most once per window. Caller holds mu.
func (l *MemoryRateLimiter) sweep(now time.Time, window time.Duration) {
	if now.Sub(l.lastSweep) < window {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.start) > 24*time.Hour {
			delete(l.buckets, k)
		}
	}
}
