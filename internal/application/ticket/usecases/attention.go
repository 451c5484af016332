package usecases

import (
	"context"
	"sort"
	"time"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

// DefaultAttentionAge is how long a high-priority or open ticket may wait
// before it needs attention.
const DefaultAttentionAge = 12 * time.Hour

type GetAttentionRequiredUseCase struct {
	ticketRepo ticket.Repository
	olderThan  time.Duration
	effects    *Effects
	logger     logger.Interface
	now        func() time.Time
}

func NewGetAttentionRequiredUseCase(ticketRepo ticket.Repository, olderThan time.Duration, effects *Effects, logger logger.Interface) *GetAttentionRequiredUseCase {
	if olderThan <= 0 {
		olderThan = DefaultAttentionAge
	}
	return &GetAttentionRequiredUseCase{
		ticketRepo: ticketRepo,
		olderThan:  olderThan,
		effects:    effects,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

// Execute returns unfinished tickets that are critical, or high priority or
// still open after the attention age. Most urgent first, oldest first within
// a priority.
func (uc *GetAttentionRequiredUseCase) Execute(ctx context.Context, requester Requester) ([]*dto.TicketDTO, error) {
	if !requester.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}
	tickets, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTOs(tickets, true), nil
}

func (uc *GetAttentionRequiredUseCase) load(ctx context.Context) ([]*ticket.Ticket, error) {
	now := uc.now()
	candidates, err := uc.ticketRepo.ListAttentionCandidates(ctx, now.Add(-uc.olderThan))
	if err != nil {
		uc.logger.Errorw("failed to load attention candidates", "error", err)
		return nil, err
	}

	result := make([]*ticket.Ticket, 0, len(candidates))
	for _, t := range candidates {
		if t.NeedsAttention(now, uc.olderThan) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		wi, wj := result[i].Priority().Weight(), result[j].Priority().Weight()
		if wi != wj {
			return wi > wj
		}
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})

	uc.effects.recordAttention(len(result))
	return result, nil
}

// SendDigest mails the current attention list to the admins. Run by the scheduler.
func (uc *GetAttentionRequiredUseCase) SendDigest(ctx context.Context) (int, error) {
	tickets, err := uc.load(ctx)
	if err != nil {
		return 0, err
	}
	if len(tickets) == 0 || uc.effects == nil || uc.effects.notifier == nil {
		return len(tickets), nil
	}

	mails := make([]email.TicketMail, 0, len(tickets))
	for _, t := range tickets {
		mails = append(mails, toMail(t))
	}
	if err := uc.effects.notifier.SendAttentionDigest(ctx, mails); err != nil {
		uc.logger.Warnw("failed to send attention digest", "error", err, "count", len(mails))
		return len(tickets), err
	}
	uc.logger.Infow("attention digest sent", "count", len(mails))
	return len(tickets), nil
}

type GetAssignedTicketsQuery struct {
	AdminID   string
	Page      int
	PageSize  int
	Requester Requester
}

type GetAssignedTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetAssignedTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetAssignedTicketsUseCase {
	return &GetAssignedTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetAssignedTicketsUseCase) Execute(ctx context.Context, q GetAssignedTicketsQuery) (*ListTicketsResult, error) {
	if !q.Requester.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}
	if q.AdminID == "" {
		return nil, errors.NewValidationError("admin ID is required")
	}

	filter := ticket.Filter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, "updatedAt", "desc"),
		AssignedTo: q.AdminID,
	}
	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list assigned tickets", "error", err, "admin_id", q.AdminID)
		return nil, err
	}
	return &ListTicketsResult{
		Tickets: dto.ToTicketDTOs(tickets, true),
		Total:   total,
		Page:    max(filter.Page, 1),
		Limit:   filter.Limit(),
	}, nil
}
