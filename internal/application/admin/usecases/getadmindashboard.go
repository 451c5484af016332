package usecases

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"remotcyberhelp/internal/application/admin/dto"
	ticketdto "remotcyberhelp/internal/application/ticket/dto"
	ticketuc "remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/domain/newsletter"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type TicketStatsReader interface {
	Execute(ctx context.Context, q ticketuc.GetTicketStatsQuery) (*ticketdto.StatsDTO, error)
}

type AttentionReader interface {
	Execute(ctx context.Context, requester ticketuc.Requester) ([]*ticketdto.TicketDTO, error)
}

// DashboardSources groups the repositories the dashboard reads from.
type DashboardSources struct {
	Stats         TicketStatsReader
	Attention     AttentionReader
	Users         user.Repository
	Contacts      contact.Repository
	Consultations consultation.Repository
	Requests      government.RequestRepository
	Subscribers   newsletter.Repository
}

// GetAdminDashboardUseCase handles retrieving admin dashboard snapshot.
type GetAdminDashboardUseCase struct {
	src    DashboardSources
	logger logger.Interface
}

func NewGetAdminDashboardUseCase(src DashboardSources, log logger.Interface) *GetAdminDashboardUseCase {
	return &GetAdminDashboardUseCase{src: src, logger: log}
}

// Execute gathers every section concurrently. Any failing source fails the snapshot.
func (uc *GetAdminDashboardUseCase) Execute(ctx context.Context, requester ticketuc.Requester) (*dto.AdminDashboardResponse, error) {
	if !requester.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}
	uc.logger.Debugw("fetching admin dashboard")

	var out dto.AdminDashboardResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := uc.src.Stats.Execute(gctx, ticketuc.GetTicketStatsQuery{Requester: requester})
		if err != nil {
			return err
		}
		out.Tickets = stats
		return nil
	})

	g.Go(func() error {
		items, err := uc.src.Attention.Execute(gctx, requester)
		if err != nil {
			return err
		}
		out.Attention = len(items)
		return nil
	})

	g.Go(func() error {
		_, total, err := uc.src.Users.List(gctx, user.ListFilter{BaseFilter: query.NewBaseFilter(1, 1, "", "")})
		if err != nil {
			return errors.NewInternalError("failed to count users")
		}
		out.Users.Total = total
		return nil
	})

	g.Go(func() error {
		n, err := uc.src.Contacts.CountByStatus(gctx, contact.StatusNew)
		if err != nil {
			return errors.NewInternalError("failed to count new contact messages")
		}
		out.Inbox.NewContacts = n
		return nil
	})

	g.Go(func() error {
		n, err := uc.src.Consultations.CountByStatus(gctx, consultation.StatusPending)
		if err != nil {
			return errors.NewInternalError("failed to count pending consultations")
		}
		out.Inbox.PendingConsultations = n
		return nil
	})

	g.Go(func() error {
		n, err := uc.src.Requests.CountByStatus(gctx, government.RequestPending)
		if err != nil {
			return errors.NewInternalError("failed to count pending government requests")
		}
		out.Inbox.PendingGovRequests = n
		return nil
	})

	g.Go(func() error {
		n, err := uc.src.Subscribers.CountActive(gctx)
		if err != nil {
			return errors.NewInternalError("failed to count subscribers")
		}
		out.Newsletter.ActiveSubscribers = n
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to build admin dashboard", "error", err)
		return nil, err
	}
	out.GeneratedAt = biztime.NowUTC().Format(time.RFC3339)
	return &out, nil
}
