package usecases

import (
	"context"
	"sync"
	"time"

	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/authorization"
)

type mockTicketRepository struct {
	CreateFunc                  func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc                  func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc                  func(ctx context.Context, id string) error
	GetByIDFunc                 func(ctx context.Context, id string) (*ticket.Ticket, error)
	GetByNumberFunc             func(ctx context.Context, number string) (*ticket.Ticket, error)
	ExistsByNumberFunc          func(ctx context.Context, number string) (bool, error)
	ListFunc                    func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error)
	ListForStatsFunc            func(ctx context.Context, filter ticket.StatsFilter) ([]*ticket.Ticket, error)
	ListAttentionCandidatesFunc func(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error)
	AddResponseFunc             func(ctx context.Context, r *ticket.Response) error
	CountResponsesFunc          func(ctx context.Context, ticketID string) (int64, error)
	DistinctCategoriesFunc      func(ctx context.Context) ([]string, error)
	RewriteCategoryFunc         func(ctx context.Context, from string, to vo.Category) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if m.ExistsByNumberFunc != nil {
		return m.ExistsByNumberFunc(ctx, number)
	}
	return false, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListForStats(ctx context.Context, filter ticket.StatsFilter) ([]*ticket.Ticket, error) {
	if m.ListForStatsFunc != nil {
		return m.ListForStatsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListAttentionCandidates(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error) {
	if m.ListAttentionCandidatesFunc != nil {
		return m.ListAttentionCandidatesFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockTicketRepository) AddResponse(ctx context.Context, r *ticket.Response) error {
	if m.AddResponseFunc != nil {
		return m.AddResponseFunc(ctx, r)
	}
	return nil
}

func (m *mockTicketRepository) CountResponses(ctx context.Context, ticketID string) (int64, error) {
	if m.CountResponsesFunc != nil {
		return m.CountResponsesFunc(ctx, ticketID)
	}
	return 0, nil
}

func (m *mockTicketRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	if m.DistinctCategoriesFunc != nil {
		return m.DistinctCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) RewriteCategory(ctx context.Context, from string, to vo.Category) (int64, error) {
	if m.RewriteCategoryFunc != nil {
		return m.RewriteCategoryFunc(ctx, from, to)
	}
	return 0, nil
}

type mockAllocator struct {
	AllocateFunc func(ctx context.Context) (string, error)
}

func (m *mockAllocator) Allocate(ctx context.Context) (string, error) {
	if m.AllocateFunc != nil {
		return m.AllocateFunc(ctx)
	}
	return "RCH26100001", nil
}

// sequenceAllocator returns numbers in order, then repeats the last.
func sequenceAllocator(numbers ...string) *mockAllocator {
	var mu sync.Mutex
	i := 0
	return &mockAllocator{AllocateFunc: func(context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n := numbers[min(i, len(numbers)-1)]
		i++
		return n, nil
	}}
}

// recordingNotifier captures the template kind of every mail it is asked to send.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	mails []email.TicketMail
	err   error
}

func (n *recordingNotifier) record(kind string, m email.TicketMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, kind)
	n.mails = append(n.mails, m)
	return n.err
}

func (n *recordingNotifier) SendTicketConfirmation(_ context.Context, t email.TicketMail) error {
	return n.record("confirmation", t)
}

func (n *recordingNotifier) SendTicketAlert(_ context.Context, t email.TicketMail) error {
	return n.record("alert", t)
}

func (n *recordingNotifier) SendTicketResponse(_ context.Context, r email.ResponseMail) error {
	kind := "response_customer"
	if r.FromAdmin {
		kind = "response_admin"
	}
	return n.record(kind, r.TicketMail)
}

func (n *recordingNotifier) SendTicketStatusChanged(_ context.Context, t email.TicketMail) error {
	return n.record("status", t)
}

func (n *recordingNotifier) SendAttentionDigest(_ context.Context, tickets []email.TicketMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, "digest")
	n.mails = append(n.mails, tickets...)
	return n.err
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ticket.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e ticket.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingMetrics struct {
	created            []string
	statuses           []string
	allocationFailures int
	attention          int
	failedKinds        []string
}

func (m *recordingMetrics) TicketCreated(priority, category string) {
	m.created = append(m.created, priority+"/"+category)
}
func (m *recordingMetrics) TicketStatusChanged(status string) { m.statuses = append(m.statuses, status) }
func (m *recordingMetrics) AllocationFailed()                 { m.allocationFailures++ }
func (m *recordingMetrics) SetAttentionRequired(n int)        { m.attention = n }
func (m *recordingMetrics) NotificationFailed(kind string)    { m.failedKinds = append(m.failedKinds, kind) }

var (
	adminRequester    = Requester{UserID: "admin-1", Email: "admin@remotcyberhelp.test", Role: authorization.RoleAdmin}
	customerRequester = Requester{UserID: "user-1", Email: "jane@example.com", Role: authorization.RoleUser}
	strangerRequester = Requester{UserID: "user-2", Email: "other@example.com", Role: authorization.RoleUser}
)

type ticketOpts struct {
	number    string
	status    vo.TicketStatus
	priority  vo.Priority
	category  string
	userID    string
	email     string
	createdAt time.Time
	resolved  *time.Time
	escalated bool
	assigned  string
}

func buildTicket(o ticketOpts) *ticket.Ticket {
	if o.number == "" {
		o.number = "RCH26100001"
	}
	if o.status == "" {
		o.status = vo.StatusOpen
	}
	if o.priority == "" {
		o.priority = vo.PriorityMedium
	}
	if o.category == "" {
		o.category = vo.CategoryTechnicalIssue.String()
	}
	if o.createdAt.IsZero() {
		o.createdAt = time.Now().UTC().Add(-time.Hour)
	}
	t, err := ticket.ReconstructTicket(ticket.TicketState{
		ID:           "tkt-" + o.number,
		Number:       o.number,
		Subject:      "Laptop won't boot",
		Description:  "Black screen after the update",
		Category:     o.category,
		Priority:     o.priority.String(),
		Status:       o.status.String(),
		CustomerName: "Jane",
		Phone:        "+254700000000",
		Email:        o.email,
		UserID:       o.userID,
		AssignedTo:   o.assigned,
		Escalated:    o.escalated,
		ResolvedAt:   o.resolved,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.createdAt,
	})
	if err != nil {
		panic(err)
	}
	return t
}
