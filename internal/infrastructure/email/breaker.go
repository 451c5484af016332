package email

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"remotcyberhelp/internal/shared/logger"
)

// BreakerSender stops calling a failing provider for a while so request
// paths that send mail do not stall on every call.
type BreakerSender struct {
	next    Sender
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerSender(next Sender, log logger.Interface) *BreakerSender {
	return &BreakerSender{
		next: next,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "email-" + next.Name(),
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warnw("email circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func (b *BreakerSender) Name() string { return b.next.Name() }

func (b *BreakerSender) Send(ctx context.Context, msg *Message) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.next.Send(ctx, msg)
	})
	return err
}
