package ticket

import (
	"context"
	"fmt"
	"time"

	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
)

const (
	DefaultNumberPrefix = "RCH"
	DefaultBucket       = "ticket"
	DefaultMaxAttempts  = 5
	DefaultBackoff      = 100 * time.Millisecond
)

// CounterStore hands out per-key sequence values. Next must increment and
// return the new value in one atomic operation, creating the key at 1 when
// it does not exist.
type CounterStore interface {
	Next(ctx context.Context, key string) (int64, error)
}

// CounterReader reads a bucket's last issued value without incrementing it.
// Unused buckets read as 0.
type CounterReader interface {
	Current(ctx context.Context, key string) (int64, error)
}

// NumberChecker reports whether a formatted number is already in use.
type NumberChecker interface {
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// NumberAllocator produces numbers of the form <prefix><YY><MM><NNNN> backed by
// a monthly counter bucket.
type NumberAllocator struct {
	counter     CounterStore
	checker     NumberChecker
	prefix      string
	bucket      string
	maxAttempts int
	backoff     time.Duration
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

type AllocatorOption func(*NumberAllocator)

func WithPrefix(prefix string) AllocatorOption {
	return func(a *NumberAllocator) { a.prefix = prefix }
}

// WithBucket sets the counter key prefix, e.g. "ticket" gives "ticket_202501".
func WithBucket(bucket string) AllocatorOption {
	return func(a *NumberAllocator) { a.bucket = bucket }
}

func WithMaxAttempts(n int) AllocatorOption {
	return func(a *NumberAllocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithBackoff sets the base delay; attempt k waits k*base before retrying.
func WithBackoff(d time.Duration) AllocatorOption {
	return func(a *NumberAllocator) {
		if d >= 0 {
			a.backoff = d
		}
	}
}

func WithClock(now func() time.Time) AllocatorOption {
	return func(a *NumberAllocator) { a.now = now }
}

func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) AllocatorOption {
	return func(a *NumberAllocator) { a.sleep = sleep }
}

func NewNumberAllocator(counter CounterStore, checker NumberChecker, opts ...AllocatorOption) *NumberAllocator {
	a := &NumberAllocator{
		counter:     counter,
		checker:     checker,
		prefix:      DefaultNumberPrefix,
		bucket:      DefaultBucket,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
		now:         func() time.Time { return biztime.ToBizTimezone(biztime.NowUTC()) },
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate increments the current month's counter, formats the number and
// verifies nobody holds it yet. A taken number or a counter error retries the
// whole cycle; after maxAttempts an allocation error is returned.
func (a *NumberAllocator) Allocate(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		number, err := a.try(ctx)
		if err == nil {
			return number, nil
		}
		lastErr = err

		if attempt < a.maxAttempts {
			if err := a.sleep(ctx, a.backoff*time.Duration(attempt)); err != nil {
				return "", fmt.Errorf("number allocation cancelled: %w", err)
			}
		}
	}
	return "", errors.NewAllocationError(
		"Unable to generate a ticket number, please try again",
		fmt.Sprintf("gave up after %d attempts: %v", a.maxAttempts, lastErr),
	)
}

func (a *NumberAllocator) try(ctx context.Context) (string, error) {
	now := a.now()
	seq, err := a.counter.Next(ctx, BucketKey(a.bucket, now))
	if err != nil {
		return "", fmt.Errorf("increment counter: %w", err)
	}
	number := FormatNumber(a.prefix, now, seq)

	exists, err := a.checker.ExistsByNumber(ctx, number)
	if err != nil {
		return "", fmt.Errorf("check number %s: %w", number, err)
	}
	if exists {
		return "", fmt.Errorf("number %s already in use", number)
	}
	return number, nil
}

// BucketKey returns the counter key for the month containing t, e.g. ticket_202501.
func BucketKey(bucket string, t time.Time) string {
	return fmt.Sprintf("%s_%04d%02d", bucket, t.Year(), int(t.Month()))
}

// FormatNumber renders prefix + YY + MM + zero-padded sequence.
func FormatNumber(prefix string, t time.Time, seq int64) string {
	return fmt.Sprintf("%s%02d%02d%04d", prefix, t.Year()%100, int(t.Month()), seq)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
