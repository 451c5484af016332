package dto

import (
	"time"

	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/shared/biztime"
)

type ConsultationDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	ServiceType     string    `json:"serviceType"`
	Mode            string    `json:"mode"`
	PreferredDate   string    `json:"preferredDate"`
	PreferredTime   string    `json:"preferredTime"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Message         string    `json:"message,omitempty"`
	Status          string    `json:"status"`
	AdminNotes      string    `json:"adminNotes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToConsultationDTO(c *consultation.Consultation) *ConsultationDTO {
	if c == nil {
		return nil
	}
	s := c.State()
	return &ConsultationDTO{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		ServiceType:     s.ServiceType,
		Mode:            s.Mode,
		PreferredDate:   biztime.FormatInBizTimezone(s.ScheduledAt, time.DateOnly),
		PreferredTime:   biztime.FormatInBizTimezone(s.ScheduledAt, "15:04"),
		ScheduledAt:     s.ScheduledAt,
		DurationMinutes: int(s.Duration / time.Minute),
		Message:         s.Message,
		Status:          s.Status,
		AdminNotes:      s.AdminNotes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToConsultationDTOs(cs []*consultation.Consultation) []*ConsultationDTO {
	out := make([]*ConsultationDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToConsultationDTO(c))
	}
	return out
}

type SlotDTO struct {
	Time      string    `json:"time"`
	StartsAt  time.Time `json:"startsAt"`
	Available bool      `json:"available"`
}

type AvailabilityDTO struct {
	Date    string    `json:"date"`
	Open    bool      `json:"open"`
	Holiday string    `json:"holiday,omitempty"`
	Slots   []SlotDTO `json:"slots"`
}
