package ticket

import "time"

// Event types published when a ticket changes.
const (
	EventCreated       = "ticket.created"
	EventStatusChanged = "ticket.status_changed"
	EventAssigned      = "ticket.assigned"
	EventEscalated     = "ticket.escalated"
	EventResponded     = "ticket.responded"
	EventDeleted       = "ticket.deleted"
)

// Event is the payload published for ticket changes.
type Event struct {
	Type       string    `json:"type"`
	TicketID   string    `json:"ticketId"`
	Number     string    `json:"ticketNumber"`
	Status     string    `json:"status,omitempty"`
	Priority   string    `json:"priority,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(eventType string, t *Ticket, actor string, at time.Time) Event {
	return Event{
		Type:       eventType,
		TicketID:   t.ID(),
		Number:     t.Number(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		Actor:      actor,
		OccurredAt: at.UTC(),
	}
}
