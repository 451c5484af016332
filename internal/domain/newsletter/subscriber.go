// Package newsletter manages mailing-list subscriptions.
package newsletter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
	"remotcyberhelp/internal/shared/query"
)

type Subscriber struct {
	id             string
	email          string
	name           string
	token          string
	active         bool
	subscribedAt   time.Time
	unsubscribedAt *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewSubscriber(email, name string, now time.Time) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	token, err := id.Token(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate unsubscribe token: %w", err)
	}
	now = now.UTC()
	return &Subscriber{
		id:           id.New(),
		email:        email,
		name:         strings.TrimSpace(name),
		token:        token,
		active:       true,
		subscribedAt: now,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

type State struct {
	ID             string
	Email          string
	Name           string
	Token          string
	Active         bool
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(s State) *Subscriber {
	return &Subscriber{
		id:             s.ID,
		email:          s.Email,
		name:           s.Name,
		token:          s.Token,
		active:         s.Active,
		subscribedAt:   s.SubscribedAt,
		unsubscribedAt: s.UnsubscribedAt,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

func (s *Subscriber) State() State {
	return State{
		ID:             s.id,
		Email:          s.email,
		Name:           s.name,
		Token:          s.token,
		Active:         s.active,
		SubscribedAt:   s.subscribedAt,
		UnsubscribedAt: s.unsubscribedAt,
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
}

func (s *Subscriber) ID() string {
	return s.id
}

func (s *Subscriber) Email() string {
	return s.email
}

func (s *Subscriber) Name() string {
	return s.name
}

func (s *Subscriber) Token() string {
	return s.token
}

func (s *Subscriber) IsActive() bool {
	return s.active
}

// Resubscribe re-activates an existing subscriber. It reports whether anything changed.
func (s *Subscriber) Resubscribe(name string, now time.Time) bool {
	changed := false
	if n := strings.TrimSpace(name); n != "" && n != s.name {
		s.name = n
		changed = true
	}
	if !s.active {
		s.active = true
		s.subscribedAt = now.UTC()
		s.unsubscribedAt = nil
		changed = true
	}
	if changed {
		s.updatedAt = now.UTC()
	}
	return changed
}

func (s *Subscriber) Unsubscribe(now time.Time) {
	if !s.active {
		return
	}
	t := now.UTC()
	s.active = false
	s.unsubscribedAt = &t
	s.updatedAt = t
}

type Repository interface {
	Create(ctx context.Context, s *Subscriber) error
	Update(ctx context.Context, s *Subscriber) error
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByToken(ctx context.Context, token string) (*Subscriber, error)
	List(ctx context.Context, filter Filter) ([]*Subscriber, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type Filter struct {
	query.BaseFilter
	Active *bool
	Search string
}
