// Package ratelimit implements fixed-window request counters per client
// fingerprint and action.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Count     int64
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type RateLimiter interface {
	// Allow counts one hit for key in the current window of length window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
	Reset(ctx context.Context, key string) error
}

// windowStart truncates now to the start of its fixed window.
func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}

func decide(count int64, limit int, resetAt time.Time) Decision {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(limit),
		Count:     count,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
