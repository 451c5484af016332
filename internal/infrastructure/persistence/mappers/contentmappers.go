package mappers

import (
	"time"

	"gorm.io/datatypes"

	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/domain/newsletter"
	"remotcyberhelp/internal/domain/workinghours"
	"remotcyberhelp/internal/infrastructure/persistence/models"
)

func ContactToModel(m *contact.Message) *models.ContactMessageModel {
	return &models.ContactMessageModel{
		ID:        m.ID(),
		Name:      m.Name(),
		Email:     m.Email(),
		Phone:     m.Phone(),
		Subject:   m.Subject(),
		Service:   m.Service(),
		Body:      m.Body(),
		Status:    string(m.Status()),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

func ContactToDomain(row *models.ContactMessageModel) *contact.Message {
	return contact.ReconstructMessage(row.ID, row.Name, row.Email, row.Phone, row.Subject,
		row.Service, row.Body, contact.Status(row.Status), row.CreatedAt, row.UpdatedAt)
}

func ConsultationToModel(c *consultation.Consultation) *models.ConsultationModel {
	s := c.State()
	return &models.ConsultationModel{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		ServiceType:     s.ServiceType,
		Mode:            s.Mode,
		ScheduledAt:     s.ScheduledAt,
		DurationMinutes: int(s.Duration / time.Minute),
		Message:         s.Message,
		Status:          s.Status,
		AdminNotes:      s.AdminNotes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ConsultationToDomain(row *models.ConsultationModel) *consultation.Consultation {
	return consultation.Reconstruct(consultation.State{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		ServiceType: row.ServiceType,
		Mode:        row.Mode,
		ScheduledAt: row.ScheduledAt,
		Duration:    time.Duration(row.DurationMinutes) * time.Minute,
		Message:     row.Message,
		Status:      row.Status,
		AdminNotes:  row.AdminNotes,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
}

func BlogPostToModel(p *blog.Post) *models.BlogPostModel {
	s := p.State()
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.BlogPostModel{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Excerpt:     s.Excerpt,
		Content:     s.Content,
		ContentHTML: s.ContentHTML,
		Category:    s.Category,
		Tags:        datatypes.NewJSONSlice(tags),
		Author:      s.Author,
		CoverImage:  s.CoverImage,
		Status:      s.Status,
		PublishedAt: s.PublishedAt,
		Views:       s.Views,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func BlogPostToDomain(row *models.BlogPostModel) *blog.Post {
	return blog.Reconstruct(blog.State{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Excerpt:     row.Excerpt,
		Content:     row.Content,
		ContentHTML: row.ContentHTML,
		Category:    row.Category,
		Tags:        []string(row.Tags),
		Author:      row.Author,
		CoverImage:  row.CoverImage,
		Status:      row.Status,
		PublishedAt: row.PublishedAt,
		Views:       row.Views,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
}

func GovernmentServiceToModel(s *government.Service) *models.GovernmentServiceModel {
	reqs := s.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &models.GovernmentServiceModel{
		ID:             s.ID,
		Code:           s.Code,
		Name:           s.Name,
		Description:    s.Description,
		Category:       s.Category,
		Fee:            s.Fee,
		ProcessingDays: s.ProcessingDays,
		Requirements:   datatypes.NewJSONSlice(reqs),
		Active:         s.Active,
	}
}

func GovernmentServiceToDomain(row *models.GovernmentServiceModel) *government.Service {
	return &government.Service{
		ID:             row.ID,
		Code:           row.Code,
		Name:           row.Name,
		Description:    row.Description,
		Category:       row.Category,
		Fee:            row.Fee,
		ProcessingDays: row.ProcessingDays,
		Requirements:   []string(row.Requirements),
		Active:         row.Active,
	}
}

func GovernmentRequestToModel(r *government.Request) *models.GovernmentRequestModel {
	s := r.State()
	return &models.GovernmentRequestModel{
		ID:          s.ID,
		Reference:   s.Reference,
		ServiceCode: s.ServiceCode,
		ServiceName: s.ServiceName,
		FullName:    s.FullName,
		Email:       s.Email,
		Phone:       s.Phone,
		IDNumber:    s.IDNumber,
		Details:     s.Details,
		Status:      s.Status,
		AdminNotes:  s.AdminNotes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func GovernmentRequestToDomain(row *models.GovernmentRequestModel) *government.Request {
	return government.ReconstructRequest(government.RequestState{
		ID:          row.ID,
		Reference:   row.Reference,
		ServiceCode: row.ServiceCode,
		ServiceName: row.ServiceName,
		FullName:    row.FullName,
		Email:       row.Email,
		Phone:       row.Phone,
		IDNumber:    row.IDNumber,
		Details:     row.Details,
		Status:      row.Status,
		AdminNotes:  row.AdminNotes,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
}

func SubscriberToModel(s *newsletter.Subscriber) *models.SubscriberModel {
	st := s.State()
	return &models.SubscriberModel{
		ID:             st.ID,
		Email:          st.Email,
		Name:           st.Name,
		Token:          st.Token,
		Active:         st.Active,
		SubscribedAt:   st.SubscribedAt,
		UnsubscribedAt: st.UnsubscribedAt,
		CreatedAt:      st.CreatedAt,
		UpdatedAt:      st.UpdatedAt,
	}
}

func SubscriberToDomain(row *models.SubscriberModel) *newsletter.Subscriber {
	return newsletter.Reconstruct(newsletter.State{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		Token:          row.Token,
		Active:         row.Active,
		SubscribedAt:   row.SubscribedAt,
		UnsubscribedAt: row.UnsubscribedAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	})
}

func WorkingDayToModel(d workinghours.DayHours) *models.WorkingDayModel {
	return &models.WorkingDayModel{
		Weekday:   int(d.Weekday),
		OpenTime:  d.Open,
		CloseTime: d.Close,
		Closed:    d.Closed,
	}
}

func WorkingDayToDomain(row *models.WorkingDayModel) workinghours.DayHours {
	return workinghours.DayHours{
		Weekday: time.Weekday(row.Weekday),
		Open:    row.OpenTime,
		Close:   row.CloseTime,
		Closed:  row.Closed,
	}
}
