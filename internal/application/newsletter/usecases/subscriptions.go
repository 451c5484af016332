// Package usecases manages newsletter subscriptions.
package usecases

import (
	"context"
	"strings"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/domain/newsletter"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type WelcomeMailer interface {
	SendNewsletterWelcome(ctx context.Context, to, name, token string) error
}

type SubscriberDTO struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name,omitempty"`
	Active         bool       `json:"active"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func toSubscriberDTO(s *newsletter.Subscriber) *SubscriberDTO {
	st := s.State()
	return &SubscriberDTO{
		ID:             st.ID,
		Email:          st.Email,
		Name:           st.Name,
		Active:         st.Active,
		SubscribedAt:   st.SubscribedAt,
		UnsubscribedAt: st.UnsubscribedAt,
	}
}

type SubscribeResult struct {
	Subscriber *SubscriberDTO
	// Created is false when the address was already on the list.
	Created bool
}

type SubscribeUseCase struct {
	repo    newsletter.Repository
	mailer  WelcomeMailer
	effects *common.BestEffort
	logger  logger.Interface
	now     func() time.Time
}

func NewSubscribeUseCase(repo newsletter.Repository, mailer WelcomeMailer, effects *common.BestEffort, logger logger.Interface) *SubscribeUseCase {
	return &SubscribeUseCase{repo: repo, mailer: mailer, effects: effects, logger: logger, now: biztime.NowUTC}
}

// Execute is idempotent: an existing address is re-activated rather than duplicated.
func (uc *SubscribeUseCase) Execute(ctx context.Context, email, name string) (*SubscribeResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.NewValidationError("email is required")
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		wasActive := existing.IsActive()
		if existing.Resubscribe(name, uc.now()) {
			if err := uc.repo.Update(ctx, existing); err != nil {
				uc.logger.Errorw("failed to update subscriber", "error", err)
				return nil, err
			}
		}
		if !wasActive {
			uc.logger.Infow("subscriber re-activated", "subscriber_id", existing.ID())
			uc.welcome(existing)
		}
		return &SubscribeResult{Subscriber: toSubscriberDTO(existing)}, nil
	case !errors.IsNotFoundError(err):
		return nil, err
	}

	sub, err := newsletter.NewSubscriber(email, name, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, sub); err != nil {
		if errors.IsDuplicateError(err) || errors.IsConflictError(err) {
			// Lost a race with a concurrent subscribe for the same address.
			return &SubscribeResult{Subscriber: toSubscriberDTO(sub)}, nil
		}
		uc.logger.Errorw("failed to create subscriber", "error", err)
		return nil, err
	}
	uc.logger.Infow("newsletter subscription created", "subscriber_id", sub.ID())
	uc.welcome(sub)
	return &SubscribeResult{Subscriber: toSubscriberDTO(sub), Created: true}, nil
}

func (uc *SubscribeUseCase) welcome(s *newsletter.Subscriber) {
	if uc.mailer == nil {
		return
	}
	to, name, token := s.Email(), s.Name(), s.Token()
	uc.effects.Go("newsletter_welcome", func(ctx context.Context) error {
		return uc.mailer.SendNewsletterWelcome(ctx, to, name, token)
	})
}

type UnsubscribeUseCase struct {
	repo   newsletter.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewUnsubscribeUseCase(repo newsletter.Repository, logger logger.Interface) *UnsubscribeUseCase {
	return &UnsubscribeUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

func (uc *UnsubscribeUseCase) Execute(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.NewValidationError("token is required")
	}
	sub, err := uc.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if !sub.IsActive() {
		return nil
	}
	sub.Unsubscribe(uc.now())
	if err := uc.repo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to unsubscribe", "subscriber_id", sub.ID(), "error", err)
		return err
	}
	uc.logger.Infow("subscriber unsubscribed", "subscriber_id", sub.ID())
	return nil
}

type ListSubscribersQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Active    *bool
	Search    string
}

type ListSubscribersUseCase struct {
	repo   newsletter.Repository
	logger logger.Interface
}

func NewListSubscribersUseCase(repo newsletter.Repository, logger logger.Interface) *ListSubscribersUseCase {
	return &ListSubscribersUseCase{repo: repo, logger: logger}
}

func (uc *ListSubscribersUseCase) Execute(ctx context.Context, q ListSubscribersQuery) (*common.Page[*SubscriberDTO], error) {
	filter := newsletter.Filter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, q.SortBy, q.SortOrder),
		Active:     q.Active,
		Search:     q.Search,
	}
	subs, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscribers", "error", err)
		return nil, err
	}
	items := make([]*SubscriberDTO, 0, len(subs))
	for _, s := range subs {
		items = append(items, toSubscriberDTO(s))
	}
	return common.NewPage(items, total, filter.PageFilter), nil
}
