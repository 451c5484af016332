package dto

import (
	"time"

	"remotcyberhelp/internal/domain/ticket"
)

type TicketDTO struct {
	ID                   string                 `json:"id"`
	TicketID             string                 `json:"ticketId"`
	Subject              string                 `json:"subject"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Priority             string                 `json:"priority"`
	Status               string                 `json:"status"`
	ExpectedResponseTime string                 `json:"expectedResponseTime"`
	CustomerName         string                 `json:"customerName"`
	Phone                string                 `json:"phone,omitempty"`
	Email                string                 `json:"email,omitempty"`
	UserID               string                 `json:"userId,omitempty"`
	AssignedTo           string                 `json:"assignedTo,omitempty"`
	Escalated            bool                   `json:"escalated"`
	EscalationReason     string                 `json:"escalationReason,omitempty"`
	EscalatedBy          string                 `json:"escalatedBy,omitempty"`
	EscalatedAt          *time.Time             `json:"escalatedAt,omitempty"`
	AssignedAt           *time.Time             `json:"assignedAt,omitempty"`
	InProgressAt         *time.Time             `json:"inProgressAt,omitempty"`
	ResolvedAt           *time.Time             `json:"resolvedAt,omitempty"`
	ClosedAt             *time.Time             `json:"closedAt,omitempty"`
	LastResponseAt       *time.Time             `json:"lastResponseAt,omitempty"`
	AdminNotes           string                 `json:"adminNotes,omitempty"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
	Responses            []ResponseDTO          `json:"responses"`
}

type ResponseDTO struct {
	ID              string              `json:"id"`
	TicketID        string              `json:"ticketId"`
	Message         string              `json:"message"`
	IsAdminResponse bool                `json:"isAdminResponse"`
	AdminID         string              `json:"adminId,omitempty"`
	Attachments     []ticket.Attachment `json:"attachments"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// CreatedTicketDTO is the reply to a customer creating a ticket.
type CreatedTicketDTO struct {
	ID                   string    `json:"id"`
	TicketID             string    `json:"ticketId"`
	Status               string    `json:"status"`
	Priority             string    `json:"priority"`
	Category             string    `json:"category"`
	ExpectedResponseTime string    `json:"expectedResponseTime"`
	CreatedAt            time.Time `json:"createdAt"`
}

type CountDTO struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type StatsDTO struct {
	Total                  int64            `json:"total"`
	OpenCount              int64            `json:"openCount"`
	ResolvedCount          int64            `json:"resolvedCount"`
	EscalatedCount         int64            `json:"escalatedCount"`
	ByStatus               map[string]int64 `json:"byStatus"`
	ByPriority             map[string]int64 `json:"byPriority"`
	ByCategory             map[string]int64 `json:"byCategory"`
	ByAssignee             map[string]int64 `json:"byAssignee"`
	AverageResolutionHours float64          `json:"averageResolutionHours"`
}

// ToTicketDTO includes admin notes only when withInternal is set.
func ToTicketDTO(t *ticket.Ticket, withInternal bool) *TicketDTO {
	if t == nil {
		return nil
	}

	responses := make([]ResponseDTO, 0, len(t.Responses()))
	for _, r := range t.Responses() {
		responses = append(responses, ToResponseDTO(r))
	}

	d := &TicketDTO{
		ID:                   t.ID(),
		TicketID:             t.Number(),
		Subject:              t.Subject(),
		Description:          t.Description(),
		Category:             t.Category().String(),
		Priority:             t.Priority().String(),
		Status:               t.Status().String(),
		ExpectedResponseTime: t.Priority().ExpectedResponseTime(),
		CustomerName:         t.CustomerName(),
		Phone:                t.Phone(),
		Email:                t.Email(),
		UserID:               t.UserID(),
		AssignedTo:           t.AssignedTo(),
		Escalated:            t.Escalated(),
		EscalationReason:     t.EscalationReason(),
		EscalatedBy:          t.EscalatedBy(),
		EscalatedAt:          t.EscalatedAt(),
		AssignedAt:           t.AssignedAt(),
		InProgressAt:         t.InProgressAt(),
		ResolvedAt:           t.ResolvedAt(),
		ClosedAt:             t.ClosedAt(),
		LastResponseAt:       t.LastResponseAt(),
		Metadata:             t.Metadata(),
		CreatedAt:            t.CreatedAt(),
		UpdatedAt:            t.UpdatedAt(),
		Responses:            responses,
	}
	if withInternal {
		d.AdminNotes = t.AdminNotes()
	}
	return d
}

func ToTicketDTOs(tickets []*ticket.Ticket, withInternal bool) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t, withInternal))
	}
	return out
}

func ToResponseDTO(r *ticket.Response) ResponseDTO {
	d := ResponseDTO{
		ID:              r.ID(),
		TicketID:        r.TicketID(),
		Message:         r.Message(),
		IsAdminResponse: r.IsAdminResponse(),
		Attachments:     r.Attachments(),
		CreatedAt:       r.CreatedAt(),
	}
	if r.IsAdminResponse() {
		d.AdminID = r.AuthorID()
	}
	return d
}

func ToCreatedTicketDTO(t *ticket.Ticket) *CreatedTicketDTO {
	return &CreatedTicketDTO{
		ID:                   t.ID(),
		TicketID:             t.Number(),
		Status:               t.Status().String(),
		Priority:             t.Priority().String(),
		Category:             t.Category().String(),
		ExpectedResponseTime: t.Priority().ExpectedResponseTime(),
		CreatedAt:            t.CreatedAt(),
	}
}
