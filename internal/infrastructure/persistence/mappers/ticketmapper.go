package mappers

import (
	"gorm.io/datatypes"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/persistence/models"
)

// TicketMapper converts between ticket aggregates and SQL rows.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	// ToDomain converts the ticket row only. Responses are attached by the repository.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ResponseToModel(r *ticket.Response) *models.TicketResponseModel
	ResponseToDomain(model *models.TicketResponseModel) *ticket.Response
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	s := t.State()
	return &models.TicketModel{
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
		Metadata:         datatypes.JSONMap(s.Metadata),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(ticket.TicketState{
		ID:               model.ID,
		Number:           model.TicketNumber,
		Subject:          model.Subject,
		Description:      model.Description,
		Category:         model.Category,
		Priority:         model.Priority,
		Status:           model.Status,
		CustomerName:     model.CustomerName,
		Phone:            model.Phone,
		Email:            model.Email,
		UserID:           model.UserID,
		AssignedTo:       model.AssignedTo,
		Escalated:        model.Escalated,
		EscalationReason: model.EscalationReason,
		EscalatedBy:      model.EscalatedBy,
		EscalatedAt:      model.EscalatedAt,
		AssignedAt:       model.AssignedAt,
		InProgressAt:     model.InProgressAt,
		ResolvedAt:       model.ResolvedAt,
		ClosedAt:         model.ClosedAt,
		LastResponseAt:   model.LastResponseAt,
		AdminNotes:       model.AdminNotes,
		Metadata:         map[string]interface{}(model.Metadata),
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
}

func (m *TicketMapperImpl) ResponseToModel(r *ticket.Response) *models.TicketResponseModel {
	attachments := make([]models.AttachmentJSON, 0, len(r.Attachments()))
	for _, a := range r.Attachments() {
		attachments = append(attachments, models.AttachmentJSON(a))
	}
	return &models.TicketResponseModel{
		ID:              r.ID(),
		TicketID:        r.TicketID(),
		Message:         r.Message(),
		IsAdminResponse: r.IsAdminResponse(),
		AuthorID:        r.AuthorID(),
		Attachments:     datatypes.NewJSONSlice(attachments),
		CreatedAt:       r.CreatedAt(),
	}
}

func (m *TicketMapperImpl) ResponseToDomain(model *models.TicketResponseModel) *ticket.Response {
	attachments := make([]ticket.Attachment, 0, len(model.Attachments))
	for _, a := range model.Attachments {
		attachments = append(attachments, ticket.Attachment(a))
	}
	return ticket.ReconstructResponse(
		model.ID,
		model.TicketID,
		model.Message,
		model.IsAdminResponse,
		model.AuthorID,
		attachments,
		model.CreatedAt,
	)
}
