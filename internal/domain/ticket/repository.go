package ticket

import (
	"context"
	"time"

	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/query"
)

// Repository persists tickets and their response threads. Implementations
// exist for SQL (gorm) and MongoDB.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	// Delete removes the ticket and every response that references it.
	Delete(ctx context.Context, id string) error
	// GetByID and GetByNumber load the ticket with its responses, oldest first.
	GetByID(ctx context.Context, id string) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	// ListForStats returns every ticket matching the range and assignee, without responses.
	ListForStats(ctx context.Context, filter StatsFilter) ([]*Ticket, error)
	// ListAttentionCandidates returns unfinished tickets that are critical,
	// high-priority or open and created before cutoff.
	ListAttentionCandidates(ctx context.Context, cutoff time.Time) ([]*Ticket, error)
	AddResponse(ctx context.Context, r *Response) error
	CountResponses(ctx context.Context, ticketID string) (int64, error)
	// DistinctCategories lists raw category values as stored.
	DistinctCategories(ctx context.Context) ([]string, error)
	// RewriteCategory replaces a stored category value, returning the rows touched.
	RewriteCategory(ctx context.Context, from string, to vo.Category) (int64, error)
}

// Filter selects tickets for listing.
type Filter struct {
	query.BaseFilter
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	Category   *vo.Category
	AssignedTo string
	Escalated  *bool
	Search     string
	// OwnerID and OwnerEmail restrict results to one customer's tickets
	// (matched by account id or email).
	OwnerID    string
	OwnerEmail string
}

// SortableFields maps API sort keys to storage columns.
var SortableFields = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"priority":     "priority",
	"status":       "status",
	"ticketNumber": "ticket_number",
	"category":     "category",
}

// StatsFilter narrows GetStats.
type StatsFilter struct {
	From       *time.Time
	To         *time.Time
	AssignedTo string
}
