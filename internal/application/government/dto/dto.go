package dto

import (
	"time"

	"remotcyberhelp/internal/domain/government"
)

type ServiceDTO struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Fee            float64  `json:"fee"`
	ProcessingDays int      `json:"processingDays"`
	Requirements   []string `json:"requirements"`
	Active         bool     `json:"active"`
}

func ToServiceDTO(s *government.Service) *ServiceDTO {
	reqs := s.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &ServiceDTO{
		Code:           s.Code,
		Name:           s.Name,
		Description:    s.Description,
		Category:       s.Category,
		Fee:            s.Fee,
		ProcessingDays: s.ProcessingDays,
		Requirements:   reqs,
		Active:         s.Active,
	}
}

func ToServiceDTOs(ss []*government.Service) []*ServiceDTO {
	out := make([]*ServiceDTO, 0, len(ss))
	for _, s := range ss {
		out = append(out, ToServiceDTO(s))
	}
	return out
}

type RequestDTO struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	ServiceCode string    `json:"serviceCode"`
	ServiceName string    `json:"serviceName"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	IDNumber    string    `json:"idNumber,omitempty"`
	Details     string    `json:"details,omitempty"`
	Status      string    `json:"status"`
	AdminNotes  string    `json:"adminNotes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToRequestDTO renders a request. The ID number is only shown to admins.
func ToRequestDTO(r *government.Request, admin bool) *RequestDTO {
	s := r.State()
	d := &RequestDTO{
		ID:          s.ID,
		Reference:   s.Reference,
		ServiceCode: s.ServiceCode,
		ServiceName: s.ServiceName,
		FullName:    s.FullName,
		Email:       s.Email,
		Phone:       s.Phone,
		Details:     s.Details,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if admin {
		d.IDNumber = s.IDNumber
		d.AdminNotes = s.AdminNotes
	}
	return d
}
