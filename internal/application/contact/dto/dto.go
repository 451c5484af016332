package dto

import (
	"time"

	"remotcyberhelp/internal/domain/contact"
)

type MessageDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Service   string    `json:"service,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToMessageDTO(m *contact.Message) *MessageDTO {
	if m == nil {
		return nil
	}
	return &MessageDTO{
		ID:        m.ID(),
		Name:      m.Name(),
		Email:     m.Email(),
		Phone:     m.Phone(),
		Subject:   m.Subject(),
		Service:   m.Service(),
		Message:   m.Body(),
		Status:    string(m.Status()),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

func ToMessageDTOs(ms []*contact.Message) []*MessageDTO {
	out := make([]*MessageDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMessageDTO(m))
	}
	return out
}
