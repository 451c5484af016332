package ticket

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
)

const (
	maxSubjectLength     = 200
	maxDescriptionLength = 5000
)

// TransitionMode controls whether ChangeStatus enforces the transition table.
type TransitionMode int

const (
	// TransitionPermissive lets callers set any status from any status.
	TransitionPermissive TransitionMode = iota
	// TransitionStrict rejects moves not listed in TicketStatus.CanTransitionTo.
	TransitionStrict
)

// Ticket is a customer support request.
type Ticket struct {
	id               string
	number           string
	subject          string
	description      string
	category         vo.Category
	priority         vo.Priority
	status           vo.TicketStatus
	customerName     string
	phone            string
	email            string
	userID           string
	assignedTo       string
	escalated        bool
	escalationReason string
	escalatedBy      string
	escalatedAt      *time.Time
	assignedAt       *time.Time
	inProgressAt     *time.Time
	resolvedAt       *time.Time
	closedAt         *time.Time
	lastResponseAt   *time.Time
	adminNotes       string
	metadata         map[string]interface{}
	createdAt        time.Time
	updatedAt        time.Time
	responses        []*Response
	changed          map[Field]struct{}
}

// Field names an attribute group touched by a mutation. Repositories write
// only the changed groups (plus updated_at) so concurrent edits of different
// groups do not overwrite each other.
type Field string

const (
	FieldStatus         Field = "status"
	FieldInProgressAt   Field = "in_progress_at"
	FieldResolvedAt     Field = "resolved_at"
	FieldClosedAt       Field = "closed_at"
	FieldPriority       Field = "priority"
	FieldAssignment     Field = "assignment"
	FieldEscalation     Field = "escalation"
	FieldLastResponseAt Field = "last_response_at"
	FieldAdminNotes     Field = "admin_notes"
	FieldCategory       Field = "category"
)

// NewTicketParams carries the customer-supplied fields of a new ticket.
type NewTicketParams struct {
	Subject      string
	Description  string
	Category     vo.Category
	Priority     vo.Priority
	CustomerName string
	Phone        string
	Email        string
	UserID       string
	Metadata     map[string]interface{}
}

// NewTicket validates params and returns an open ticket without a number.
// The number is attached later with SetNumber.
func NewTicket(p NewTicketParams, now time.Time) (*Ticket, error) {
	description := strings.TrimSpace(p.Description)
	if description == "" {
		return nil, errors.NewValidationError("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, errors.NewValidationError(fmt.Sprintf("description exceeds maximum length of %d characters", maxDescriptionLength))
	}
	if !p.Category.IsValid() {
		return nil, errors.NewValidationError("invalid category")
	}
	if p.Priority == "" {
		p.Priority = vo.PriorityMedium
	}
	if !p.Priority.IsValid() {
		return nil, errors.NewValidationError("invalid priority")
	}

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		subject = DefaultSubject(p.Category, p.CustomerName)
	}
	subject = truncateRunes(subject, maxSubjectLength)

	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	now = now.UTC()
	return &Ticket{
		id:           id.New(),
		subject:      subject,
		description:  description,
		category:     p.Category,
		priority:     p.Priority,
		status:       vo.StatusOpen,
		customerName: strings.TrimSpace(p.CustomerName),
		phone:        strings.TrimSpace(p.Phone),
		email:        strings.ToLower(strings.TrimSpace(p.Email)),
		userID:       p.UserID,
		metadata:     metadata,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// truncateRunes cuts s to at most n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// DefaultSubject builds a subject when the customer did not provide one.
func DefaultSubject(category vo.Category, customerName string) string {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return category.Label() + " request"
	}
	return fmt.Sprintf("%s request from %s", category.Label(), name)
}

// TicketState is the full persisted state used to rebuild a Ticket.
type TicketState struct {
	ID               string
	Number           string
	Subject          string
	Description      string
	Category         string
	Priority         string
	Status           string
	CustomerName     string
	Phone            string
	Email            string
	UserID           string
	AssignedTo       string
	Escalated        bool
	EscalationReason string
	EscalatedBy      string
	EscalatedAt      *time.Time
	AssignedAt       *time.Time
	InProgressAt     *time.Time
	ResolvedAt       *time.Time
	ClosedAt         *time.Time
	LastResponseAt   *time.Time
	AdminNotes       string
	Metadata         map[string]interface{}
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructTicket rebuilds a ticket from storage. Legacy category spellings
// are normalized; unrecognized ones become "other".
func ReconstructTicket(s TicketState) (*Ticket, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if s.Number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	status := vo.TicketStatus(s.Status)
	if !status.IsValid() {
		parsed, err := vo.ParseStatus(s.Status)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", s.Number, err)
		}
		status = parsed
	}
	priority, err := vo.ParsePriority(s.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", s.Number, err)
	}
	category, ok := vo.NormalizeCategory(s.Category)
	if !ok {
		category = vo.CategoryOther
	}
	metadata := s.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Ticket{
		id:               s.ID,
		number:           s.Number,
		subject:          s.Subject,
		description:      s.Description,
		category:         category,
		priority:         priority,
		status:           status,
		customerName:     s.CustomerName,
		phone:            s.Phone,
		email:            s.Email,
		userID:           s.UserID,
		assignedTo:       s.AssignedTo,
		escalated:        s.Escalated,
		escalationReason: s.EscalationReason,
		escalatedBy:      s.EscalatedBy,
		escalatedAt:      s.EscalatedAt,
		assignedAt:       s.AssignedAt,
		inProgressAt:     s.InProgressAt,
		resolvedAt:       s.ResolvedAt,
		closedAt:         s.ClosedAt,
		lastResponseAt:   s.LastResponseAt,
		adminNotes:       s.AdminNotes,
		metadata:         metadata,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}, nil
}

// State exports the ticket for persistence.
func (t *Ticket) State() TicketState {
	return TicketState{
		ID:               t.id,
		Number:           t.number,
		Subject:          t.subject,
		Description:      t.description,
		Category:         t.category.String(),
		Priority:         t.priority.String(),
		Status:           t.status.String(),
		CustomerName:     t.customerName,
		Phone:            t.phone,
		Email:            t.email,
		UserID:           t.userID,
		AssignedTo:       t.assignedTo,
		Escalated:        t.escalated,
		EscalationReason: t.escalationReason,
		EscalatedBy:      t.escalatedBy,
		EscalatedAt:      t.escalatedAt,
		AssignedAt:       t.assignedAt,
		InProgressAt:     t.inProgressAt,
		ResolvedAt:       t.resolvedAt,
		ClosedAt:         t.closedAt,
		LastResponseAt:   t.lastResponseAt,
		AdminNotes:       t.adminNotes,
		Metadata:         t.Metadata(),
		CreatedAt:        t.createdAt,
		UpdatedAt:        t.updatedAt,
	}
}

func (t *Ticket) ID() string { return t.id }
func (t *Ticket) Number() string { return t.number }
func (t *Ticket) Subject() string { return t.subject }
func (t *Ticket) Description() string { return t.description }
func (t *Ticket) Category() vo.Category { return t.category }
func (t *Ticket) Priority() vo.Priority { return t.priority }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) CustomerName() string { return t.customerName }
func (t *Ticket) Phone() string { return t.phone }
func (t *Ticket) Email() string { return t.email }
func (t *Ticket) UserID() string { return t.userID }
func (t *Ticket) AssignedTo() string { return t.assignedTo }
func (t *Ticket) Escalated() bool { return t.escalated }
func (t *Ticket) EscalationReason() string { return t.escalationReason }
func (t *Ticket) EscalatedBy() string { return t.escalatedBy }
func (t *Ticket) EscalatedAt() *time.Time { return t.escalatedAt }
func (t *Ticket) AssignedAt() *time.Time { return t.assignedAt }
func (t *Ticket) InProgressAt() *time.Time { return t.inProgressAt }
func (t *Ticket) ResolvedAt() *time.Time { return t.resolvedAt }
func (t *Ticket) ClosedAt() *time.Time { return t.closedAt }
func (t *Ticket) LastResponseAt() *time.Time { return t.lastResponseAt }
func (t *Ticket) AdminNotes() string { return t.adminNotes }
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time { return t.updatedAt }

func (t *Ticket) Metadata() map[string]interface{} {
	metadataCopy := make(map[string]interface{}, len(t.metadata))
	for k, v := range t.metadata {
		metadataCopy[k] = v
	}
	return metadataCopy
}

// Responses are ordered oldest first.
func (t *Ticket) Responses() []*Response {
	responsesCopy := make([]*Response, len(t.responses))
	copy(responsesCopy, t.responses)
	return responsesCopy
}

// AttachResponses sets the loaded response thread. Used by repositories.
func (t *Ticket) AttachResponses(responses []*Response) {
	t.responses = responses
}

// SetNumber attaches the allocated ticket number. A number never changes once set.
func (t *Ticket) SetNumber(number string) error {
	if t.number != "" {
		return fmt.Errorf("ticket number is already set")
	}
	if number == "" {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ChangeStatus moves the ticket to next and stamps the timestamp belonging
// to that status. In permissive mode any move is accepted.
func (t *Ticket) ChangeStatus(next vo.TicketStatus, mode TransitionMode, now time.Time) error {
	if !next.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", next))
	}
	if mode == TransitionStrict && !t.status.CanTransitionTo(next) {
		return errors.NewValidationError(fmt.Sprintf("cannot transition from %s to %s", t.status, next))
	}

	now = now.UTC()
	t.status = next
	t.updatedAt = now
	t.markChanged(FieldStatus)

	switch next {
	case vo.StatusInProgress:
		t.inProgressAt = &now
		t.markChanged(FieldInProgressAt)
	case vo.StatusResolved:
		t.resolvedAt = &now
		t.markChanged(FieldResolvedAt)
	case vo.StatusClosed:
		t.closedAt = &now
		t.markChanged(FieldClosedAt)
	}
	return nil
}

// AssignTo hands the ticket to an admin and moves it to in_progress.
func (t *Ticket) AssignTo(adminID string, now time.Time) error {
	if strings.TrimSpace(adminID) == "" {
		return errors.NewValidationError("admin ID is required")
	}
	now = now.UTC()
	t.assignedTo = adminID
	t.assignedAt = &now
	t.status = vo.StatusInProgress
	t.inProgressAt = &now
	t.updatedAt = now
	t.markChanged(FieldAssignment, FieldStatus, FieldInProgressAt)
	return nil
}

// Escalate forces critical priority. Closed tickets cannot be escalated.
func (t *Ticket) Escalate(reason, escalatedBy string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.NewValidationError("escalation reason is required")
	}
	if t.status.IsClosed() {
		return errors.NewValidationError("closed tickets cannot be escalated")
	}
	now = now.UTC()
	t.priority = vo.PriorityCritical
	t.escalated = true
	t.escalationReason = reason
	t.escalatedBy = escalatedBy
	t.escalatedAt = &now
	t.updatedAt = now
	t.markChanged(FieldEscalation, FieldPriority)
	return nil
}

// RecordResponse notes that a reply was added to the thread.
func (t *Ticket) RecordResponse(now time.Time) {
	now = now.UTC()
	t.lastResponseAt = &now
	t.updatedAt = now
	t.markChanged(FieldLastResponseAt)
}

func (t *Ticket) SetAdminNotes(notes string) {
	t.adminNotes = strings.TrimSpace(notes)
	t.markChanged(FieldAdminNotes)
}

// SetCategory replaces the category, used when migrating legacy values.
func (t *Ticket) SetCategory(c vo.Category) error {
	if !c.IsValid() {
		return errors.NewValidationError("invalid category")
	}
	t.category = c
	t.markChanged(FieldCategory)
	return nil
}

func (t *Ticket) markChanged(fields ...Field) {
	if t.changed == nil {
		t.changed = make(map[Field]struct{}, len(fields))
	}
	for _, f := range fields {
		t.changed[f] = struct{}{}
	}
}

// Changes lists the attribute groups modified since the ticket was created,
// loaded or last persisted.
func (t *Ticket) Changes() []Field {
	out := make([]Field, 0, len(t.changed))
	for f := range t.changed {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasChanged reports whether f is pending.
func (t *Ticket) HasChanged(f Field) bool {
	_, ok := t.changed[f]
	return ok
}

// ClearChanges is called by repositories after a successful write.
func (t *Ticket) ClearChanges() {
	t.changed = nil
}

// IsOwnedBy reports whether the ticket belongs to the account (by id or email).
func (t *Ticket) IsOwnedBy(userID, email string) bool {
	if userID != "" && t.userID == userID {
		return true
	}
	return email != "" && t.email != "" && strings.EqualFold(t.email, email)
}

// NeedsAttention is true for unfinished tickets that are critical, or
// high-priority or still open after olderThan.
func (t *Ticket) NeedsAttention(now time.Time, olderThan time.Duration) bool {
	if t.status.IsFinished() {
		return false
	}
	if t.priority == vo.PriorityCritical {
		return true
	}
	stale := now.Sub(t.createdAt) > olderThan
	return stale && (t.priority == vo.PriorityHigh || t.status == vo.StatusOpen)
}

// ResolutionHours returns resolved_at - created_at in hours.
func (t *Ticket) ResolutionHours() (float64, bool) {
	if t.resolvedAt == nil {
		return 0, false
	}
	return t.resolvedAt.Sub(t.createdAt).Hours(), true
}
