// Package consultation models booked consultation sessions.
package consultation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
	"remotcyberhelp/internal/shared/query"
)

// MaxDuration bounds a single booking.
const MaxDuration = 4 * time.Hour

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Mode is how the session takes place.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeOnsite Mode = "onsite"
	ModePhone  Mode = "phone"
)

func (m Mode) IsValid() bool {
	return m == ModeRemote || m == ModeOnsite || m == ModePhone
}

type Consultation struct {
	id          string
	name        string
	email       string
	phone       string
	serviceType string
	mode        Mode
	scheduledAt time.Time
	duration    time.Duration
	message     string
	status      Status
	adminNotes  string
	createdAt   time.Time
	updatedAt   time.Time
}

type NewParams struct {
	Name        string
	Email       string
	Phone       string
	ServiceType string
	Mode        Mode
	ScheduledAt time.Time
	Duration    time.Duration
	Message     string
}

func NewConsultation(p NewParams, now time.Time) (*Consultation, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.NewValidationError("name is required")
	}
	if strings.TrimSpace(p.ServiceType) == "" {
		return nil, errors.NewValidationError("serviceType is required")
	}
	if p.Mode == "" {
		p.Mode = ModeRemote
	}
	if !p.Mode.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid mode: %s", p.Mode))
	}
	if !p.ScheduledAt.After(now) {
		return nil, errors.NewValidationError("preferred date and time must be in the future")
	}
	if p.Duration <= 0 {
		p.Duration = time.Hour
	}
	if p.Duration > MaxDuration {
		return nil, errors.NewValidationError("a session cannot be longer than 4 hours")
	}
	now = now.UTC()
	return &Consultation{
		id:          id.New(),
		name:        strings.TrimSpace(p.Name),
		email:       strings.ToLower(strings.TrimSpace(p.Email)),
		phone:       strings.TrimSpace(p.Phone),
		serviceType: strings.TrimSpace(p.ServiceType),
		mode:        p.Mode,
		scheduledAt: p.ScheduledAt.UTC(),
		duration:    p.Duration,
		message:     strings.TrimSpace(p.Message),
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type State struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	ServiceType string
	Mode        string
	ScheduledAt time.Time
	Duration    time.Duration
	Message     string
	Status      string
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func Reconstruct(s State) *Consultation {
	return &Consultation{
		id:          s.ID,
		name:        s.Name,
		email:       s.Email,
		phone:       s.Phone,
		serviceType: s.ServiceType,
		mode:        Mode(s.Mode),
		scheduledAt: s.ScheduledAt,
		duration:    s.Duration,
		message:     s.Message,
		status:      Status(s.Status),
		adminNotes:  s.AdminNotes,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (c *Consultation) State() State {
	return State{
		ID:          c.id,
		Name:        c.name,
		Email:       c.email,
		Phone:       c.phone,
		ServiceType: c.serviceType,
		Mode:        string(c.mode),
		ScheduledAt: c.scheduledAt,
		Duration:    c.duration,
		Message:     c.message,
		Status:      string(c.status),
		AdminNotes:  c.adminNotes,
		CreatedAt:   c.createdAt,
		UpdatedAt:   c.updatedAt,
	}
}

func (c *Consultation) ID() string { return c.id }
func (c *Consultation) Name() string { return c.name }
func (c *Consultation) Email() string { return c.email }
func (c *Consultation) ServiceType() string { return c.serviceType }
func (c *Consultation) Mode() Mode { return c.mode }
func (c *Consultation) ScheduledAt() time.Time { return c.scheduledAt }
func (c *Consultation) Status() Status { return c.status }

// EndsAt is the end of the booked slot.
func (c *Consultation) EndsAt() time.Time {
	return c.scheduledAt.Add(c.duration)
}

// Overlaps reports whether the booking intersects [start, end).
func (c *Consultation) Overlaps(start, end time.Time) bool {
	return c.scheduledAt.Before(end) && start.Before(c.EndsAt())
}

func (c *Consultation) UpdateStatus(s Status, notes string, now time.Time) error {
	if !s.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", s))
	}
	c.status = s
	if strings.TrimSpace(notes) != "" {
		c.adminNotes = strings.TrimSpace(notes)
	}
	c.updatedAt = now.UTC()
	return nil
}

type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	Update(ctx context.Context, c *Consultation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Consultation, error)
	List(ctx context.Context, filter Filter) ([]*Consultation, int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// ListActiveBetween returns non-cancelled bookings overlapping [from, to).
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*Consultation, error)
}

type Filter struct {
	query.BaseFilter
	Status *Status
	Search string
}
