package usecases

import (
	"context"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/goroutine"
	"remotcyberhelp/internal/shared/logger"
)

// NumberAllocator hands out unique ticket numbers.
type NumberAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

// TxRunner runs fn inside a storage transaction. Nil means no transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TicketNotifier interface {
	SendTicketConfirmation(ctx context.Context, t email.TicketMail) error
	SendTicketAlert(ctx context.Context, t email.TicketMail) error
	SendTicketResponse(ctx context.Context, r email.ResponseMail) error
	SendTicketStatusChanged(ctx context.Context, t email.TicketMail) error
	SendAttentionDigest(ctx context.Context, tickets []email.TicketMail) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event ticket.Event) error
}

type MetricsRecorder interface {
	TicketCreated(priority, category string)
	TicketStatusChanged(status string)
	AllocationFailed()
	SetAttentionRequired(n int)
	NotificationFailed(kind string)
}

// Requester identifies who is calling a use case.
type Requester struct {
	UserID string
	Email  string
	Role   authorization.UserRole
}

func (r Requester) IsAdmin() bool {
	return r.Role.IsAdmin()
}

func (r Requester) canAccess(t *ticket.Ticket) bool {
	return r.IsAdmin() || t.IsOwnedBy(r.UserID, r.Email)
}

// Effects runs the best-effort side effects of ticket changes: emails,
// events and metrics. Failures are logged and never reach the caller.
type Effects struct {
	notifier TicketNotifier
	events   EventPublisher
	metrics  MetricsRecorder
	logger   logger.Interface
	async    func(name string, fn func())
}

func NewEffects(notifier TicketNotifier, events EventPublisher, metrics MetricsRecorder, log logger.Interface) *Effects {
	return &Effects{
		notifier: notifier,
		events:   events,
		metrics:  metrics,
		logger:   log,
		async: func(name string, fn func()) {
			goroutine.SafeGo(log, name, fn)
		},
	}
}

// Synchronous makes side effects run inline. Used by tests and CLI commands.
func (e *Effects) Synchronous() *Effects {
	e.async = func(_ string, fn func()) { fn() }
	return e
}

func (e *Effects) notify(kind string, send func(ctx context.Context, n TicketNotifier) error) {
	if e == nil || e.notifier == nil {
		return
	}
	e.async("ticket-notify-"+kind, func() {
		if err := send(context.Background(), e.notifier); err != nil {
			e.logger.Warnw("ticket notification failed", "kind", kind, "error", err)
			if e.metrics != nil {
				e.metrics.NotificationFailed(kind)
			}
		}
	})
}

func (e *Effects) publish(event ticket.Event) {
	if e == nil || e.events == nil {
		return
	}
	e.async("ticket-event-"+event.Type, func() {
		if err := e.events.Publish(context.Background(), event); err != nil {
			e.logger.Warnw("ticket event publish failed", "type", event.Type, "ticket_number", event.Number, "error", err)
		}
	})
}

func (e *Effects) recordCreated(t *ticket.Ticket) {
	if e != nil && e.metrics != nil {
		e.metrics.TicketCreated(t.Priority().String(), t.Category().String())
	}
}

func (e *Effects) recordStatus(t *ticket.Ticket) {
	if e != nil && e.metrics != nil {
		e.metrics.TicketStatusChanged(t.Status().String())
	}
}

func (e *Effects) recordAllocationFailure() {
	if e != nil && e.metrics != nil {
		e.metrics.AllocationFailed()
	}
}

func (e *Effects) recordAttention(n int) {
	if e != nil && e.metrics != nil {
		e.metrics.SetAttentionRequired(n)
	}
}

func toMail(t *ticket.Ticket) email.TicketMail {
	return email.TicketMail{
		Number:       t.Number(),
		Subject:      t.Subject(),
		Description:  t.Description(),
		CustomerName: t.CustomerName(),
		Email:        t.Email(),
		Phone:        t.Phone(),
		Category:     t.Category().Label(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
	}
}
