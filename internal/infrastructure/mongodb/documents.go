package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/domain/user"
)

type ticketDocument struct {
	ID               string                 `bson:"_id"`
	TicketNumber     string                 `bson:"ticket_number"`
	Subject          string                 `bson:"subject"`
	Description      string                 `bson:"description"`
	Category         string                 `bson:"category"`
	Priority         string                 `bson:"priority"`
	Status           string                 `bson:"status"`
	CustomerName     string                 `bson:"customer_name,omitempty"`
	Phone            string                 `bson:"phone,omitempty"`
	Email            string                 `bson:"email,omitempty"`
	UserID           string                 `bson:"user_id,omitempty"`
	AssignedTo       string                 `bson:"assigned_to,omitempty"`
	Escalated        bool                   `bson:"escalated"`
	EscalationReason string                 `bson:"escalation_reason,omitempty"`
	EscalatedBy      string                 `bson:"escalated_by,omitempty"`
	EscalatedAt      *time.Time             `bson:"escalated_at,omitempty"`
	AssignedAt       *time.Time             `bson:"assigned_at,omitempty"`
	InProgressAt     *time.Time             `bson:"in_progress_at,omitempty"`
	ResolvedAt       *time.Time             `bson:"resolved_at,omitempty"`
	ClosedAt         *time.Time             `bson:"closed_at,omitempty"`
	LastResponseAt   *time.Time             `bson:"last_response_at,omitempty"`
	AdminNotes       string                 `bson:"admin_notes,omitempty"`
	Metadata         map[string]interface{} `bson:"metadata,omitempty"`
	CreatedAt        time.Time              `bson:"created_at"`
	UpdatedAt        time.Time              `bson:"updated_at"`
}

type attachmentDocument struct {
	Name     string `bson:"name"`
	URL      string `bson:"url"`
	MimeType string `bson:"mime_type,omitempty"`
	Size     int64  `bson:"size,omitempty"`
}

type responseDocument struct {
	ID              string               `bson:"_id"`
	TicketID        string               `bson:"ticket_id"`
	Message         string               `bson:"message"`
	IsAdminResponse bool                 `bson:"is_admin_response"`
	AuthorID        string               `bson:"author_id,omitempty"`
	Attachments     []attachmentDocument `bson:"attachments,omitempty"`
	CreatedAt       time.Time            `bson:"created_at"`
}

type accountDocument struct {
	ID                 string     `bson:"_id"`
	Email              string     `bson:"email"`
	Name               string     `bson:"name"`
	PasswordHash       string     `bson:"password_hash"`
	Role               string     `bson:"role"`
	Active             bool       `bson:"active"`
	LoginAttempts      int        `bson:"login_attempts"`
	LockUntil          *time.Time `bson:"lock_until"`
	LastLogin          *time.Time `bson:"last_login,omitempty"`
	ResetCodeHash      string     `bson:"reset_code_hash,omitempty"`
	ResetCodeExpiresAt *time.Time `bson:"reset_code_expires_at,omitempty"`
	CreatedAt          time.Time  `bson:"created_at"`
	UpdatedAt          time.Time  `bson:"updated_at"`
}

type counterDocument struct {
	Key      string    `bson:"_id"`
	Sequence int64     `bson:"sequence"`
	Updated  time.Time `bson:"updated_at"`
}

func ticketToDocument(t *ticket.Ticket) *ticketDocument {
	s := t.State()
	return &ticketDocument{
		ID:               s.ID,
		TicketNumber:     s.Number,
		Subject:          s.Subject,
		Description:      s.Description,
		Category:         s.Category,
		Priority:         s.Priority,
		Status:           s.Status,
		CustomerName:     s.CustomerName,
		Phone:            s.Phone,
		Email:            s.Email,
		UserID:           s.UserID,
		AssignedTo:       s.AssignedTo,
		Escalated:        s.Escalated,
		EscalationReason: s.EscalationReason,
		EscalatedBy:      s.EscalatedBy,
		EscalatedAt:      s.EscalatedAt,
		AssignedAt:       s.AssignedAt,
		InProgressAt:     s.InProgressAt,
		ResolvedAt:       s.ResolvedAt,
		ClosedAt:         s.ClosedAt,
		LastResponseAt:   s.LastResponseAt,
		AdminNotes:       s.AdminNotes,
		Metadata:         s.Metadata,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ticketUpdate builds the $set document for the ticket's pending changes,
// or nil when nothing changed.
func ticketUpdate(t *ticket.Ticket) bson.M {
	changes := t.Changes()
	if len(changes) == 0 {
		return nil
	}
	d := ticketToDocument(t)
	set := bson.M{"updated_at": d.UpdatedAt}
	for _, f := range changes {
		switch f {
		case ticket.FieldStatus:
			set["status"] = d.Status
		case ticket.FieldInProgressAt:
			set["in_progress_at"] = d.InProgressAt
		case ticket.FieldResolvedAt:
			set["resolved_at"] = d.ResolvedAt
		case ticket.FieldClosedAt:
			set["closed_at"] = d.ClosedAt
		case ticket.FieldPriority:
			set["priority"] = d.Priority
		case ticket.FieldAssignment:
			set["assigned_to"] = d.AssignedTo
			set["assigned_at"] = d.AssignedAt
		case ticket.FieldEscalation:
			set["escalated"] = d.Escalated
			set["escalation_reason"] = d.EscalationReason
			set["escalated_by"] = d.EscalatedBy
			set["escalated_at"] = d.EscalatedAt
		case ticket.FieldLastResponseAt:
			set["last_response_at"] = d.LastResponseAt
		case ticket.FieldAdminNotes:
			set["admin_notes"] = d.AdminNotes
		case ticket.FieldCategory:
			set["category"] = d.Category
		}
	}
	return set
}

func (d *ticketDocument) toDomain() (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(ticket.TicketState{
		ID:               d.ID,
		Number:           d.TicketNumber,
		Subject:          d.Subject,
		Description:      d.Description,
		Category:         d.Category,
		Priority:         d.Priority,
		Status:           d.Status,
		CustomerName:     d.CustomerName,
		Phone:            d.Phone,
		Email:            d.Email,
		UserID:           d.UserID,
		AssignedTo:       d.AssignedTo,
		Escalated:        d.Escalated,
		EscalationReason: d.EscalationReason,
		EscalatedBy:      d.EscalatedBy,
		EscalatedAt:      d.EscalatedAt,
		AssignedAt:       d.AssignedAt,
		InProgressAt:     d.InProgressAt,
		ResolvedAt:       d.ResolvedAt,
		ClosedAt:         d.ClosedAt,
		LastResponseAt:   d.LastResponseAt,
		AdminNotes:       d.AdminNotes,
		Metadata:         d.Metadata,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	})
}

func responseToDocument(r *ticket.Response) *responseDocument {
	attachments := make([]attachmentDocument, 0, len(r.Attachments()))
	for _, a := range r.Attachments() {
		attachments = append(attachments, attachmentDocument(a))
	}
	return &responseDocument{
		ID:              r.ID(),
		TicketID:        r.TicketID(),
		Message:         r.Message(),
		IsAdminResponse: r.IsAdminResponse(),
		AuthorID:        r.AuthorID(),
		Attachments:     attachments,
		CreatedAt:       r.CreatedAt(),
	}
}

func (d *responseDocument) toDomain() *ticket.Response {
	attachments := make([]ticket.Attachment, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		attachments = append(attachments, ticket.Attachment(a))
	}
	return ticket.ReconstructResponse(d.ID, d.TicketID, d.Message, d.IsAdminResponse, d.AuthorID, attachments, d.CreatedAt)
}

func accountToDocument(a *user.Account) *accountDocument {
	s := a.State()
	return &accountDocument{
		ID:                 s.ID,
		Email:              s.Email,
		Name:               s.Name,
		PasswordHash:       s.PasswordHash,
		Role:               s.Role,
		Active:             s.Active,
		LoginAttempts:      s.LoginAttempts,
		LockUntil:          s.LockUntil,
		LastLogin:          s.LastLogin,
		ResetCodeHash:      s.ResetCodeHash,
		ResetCodeExpiresAt: s.ResetCodeExpiresAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (d *accountDocument) toDomain() (*user.Account, error) {
	return user.ReconstructAccount(user.AccountState{
		ID:                 d.ID,
		Email:              d.Email,
		Name:               d.Name,
		PasswordHash:       d.PasswordHash,
		Role:               d.Role,
		Active:             d.Active,
		LoginAttempts:      d.LoginAttempts,
		LockUntil:          d.LockUntil,
		LastLogin:          d.LastLogin,
		ResetCodeHash:      d.ResetCodeHash,
		ResetCodeExpiresAt: d.ResetCodeExpiresAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	})
}
