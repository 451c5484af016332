// Package contact models messages sent through the public contact form.
package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
	"remotcyberhelp/internal/shared/query"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

type Message struct {
	id        string
	name      string
	email     string
	phone     string
	subject   string
	service   string
	body      string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewMessage(name, email, phone, subject, service, body string, now time.Time) (*Message, error) {
	name = strings.TrimSpace(name)
	body = strings.TrimSpace(body)
	if name == "" {
		return nil, errors.NewValidationError("name is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, errors.NewValidationError("email is required")
	}
	if body == "" {
		return nil, errors.NewValidationError("message is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = fmt.Sprintf("New enquiry from %s", name)
	}
	now = now.UTC()
	return &Message{
		id:        id.New(),
		name:      name,
		email:     strings.ToLower(strings.TrimSpace(email)),
		phone:     strings.TrimSpace(phone),
		subject:   subject,
		service:   strings.TrimSpace(service),
		body:      body,
		status:    StatusNew,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructMessage(id, name, email, phone, subject, service, body string, status Status, createdAt, updatedAt time.Time) *Message {
	return &Message{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		subject:   subject,
		service:   service,
		body:      body,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (m *Message) ID() string { return m.id }
func (m *Message) Name() string { return m.name }
func (m *Message) Email() string { return m.email }
func (m *Message) Phone() string { return m.phone }
func (m *Message) Subject() string { return m.subject }
func (m *Message) Service() string { return m.service }
func (m *Message) Body() string { return m.body }
func (m *Message) Status() Status { return m.status }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) UpdatedAt() time.Time { return m.updatedAt }

func (m *Message) MarkStatus(s Status, now time.Time) error {
	if !s.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", s))
	}
	m.status = s
	m.updatedAt = now.UTC()
	return nil
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, filter Filter) ([]*Message, int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

type Filter struct {
	query.BaseFilter
	Status *Status
	Search string
}
