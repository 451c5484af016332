package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/shared/logger"
)

const ticketEventChannel = "rch:ticket:events"

// TicketEventHandler is called for each received ticket event.
type TicketEventHandler func(ctx context.Context, event ticket.Event)

type TicketEventPublisher interface {
	Publish(ctx context.Context, event ticket.Event) error
	Close() error
}

type TicketEventSubscriber interface {
	Subscribe(ctx context.Context, handler TicketEventHandler) error
}

// Subject maps an event type such as "ticket.created" to "<prefix>.ticket.created".
func Subject(prefix, eventType string) string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

// NATSTicketEventBus publishes ticket events on NATS core subjects.
type NATSTicketEventBus struct {
	conn   *nats.Conn
	prefix string
	logger logger.Interface
}

func NewNATSTicketEventBus(url, prefix string, log logger.Interface) (*NATSTicketEventBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("remotcyberhelp"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnw("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Infow("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSTicketEventBus{conn: conn, prefix: prefix, logger: log}, nil
}

func (b *NATSTicketEventBus) Publish(_ context.Context, event ticket.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := Subject(b.prefix, event.Type)
	if err := b.conn.Publish(subject, data); err != nil {
		b.logger.Errorw("failed to publish ticket event",
			"subject", subject,
			"ticket_number", event.Number,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("ticket event published", "subject", subject, "ticket_number", event.Number)
	return nil
}

// Subscribe receives every ticket event until ctx is cancelled.
func (b *NATSTicketEventBus) Subscribe(ctx context.Context, handler TicketEventHandler) error {
	subject := Subject(b.prefix, "ticket.>")
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		var event ticket.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Warnw("failed to unmarshal ticket event", "subject", msg.Subject, "error", err)
			return
		}
		handler(context.Background(), event)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	b.logger.Infow("subscribed to ticket events", "subject", subject)
	<-ctx.Done()
	return ctx.Err()
}

func (b *NATSTicketEventBus) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return fmt.Errorf("failed to drain nats connection: %w", err)
	}
	return nil
}

// RedisTicketEventBus distributes ticket events over Redis Pub/Sub when no
// NATS server is configured.
type RedisTicketEventBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisTicketEventBus(client *redis.Client, log logger.Interface) *RedisTicketEventBus {
	return &RedisTicketEventBus{client: client, logger: log}
}

func (b *RedisTicketEventBus) Publish(ctx context.Context, event ticket.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, ticketEventChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket event",
			"type", event.Type,
			"ticket_number", event.Number,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *RedisTicketEventBus) Subscribe(ctx context.Context, handler TicketEventHandler) error {
	ps := b.client.Subscribe(ctx, ticketEventChannel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	b.logger.Infow("subscribed to ticket events", "channel", ticketEventChannel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket event channel closed")
				return nil
			}
			var event ticket.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal ticket event", "payload", msg.Payload, "error", err)
				continue
			}
			handler(context.Background(), event)
		}
	}
}

// Close is a no-op; the Redis client is owned by the caller.
func (b *RedisTicketEventBus) Close() error { return nil }

type NoopTicketEventBus struct{}

func (NoopTicketEventBus) Publish(context.Context, ticket.Event) error { return nil }
func (NoopTicketEventBus) Close() error                                { return nil }
