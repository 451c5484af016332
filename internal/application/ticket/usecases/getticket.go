package usecases

import (
	"context"
	"strings"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

// GetTicketQuery looks a ticket up by internal id or by ticket number.
type GetTicketQuery struct {
	Ref       string
	Requester Requester
}

type GetTicketUseCase struct {
	ticketRepo ticket.Repository
	prefix     string
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.Repository, numberPrefix string, logger logger.Interface) *GetTicketUseCase {
	if numberPrefix == "" {
		numberPrefix = ticket.DefaultNumberPrefix
	}
	return &GetTicketUseCase{ticketRepo: ticketRepo, prefix: numberPrefix, logger: logger}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, uc.prefix, query.Ref)
	if err != nil {
		return nil, err
	}
	if !query.Requester.canAccess(t) {
		uc.logger.Warnw("ticket access denied", "ticket_id", t.ID(), "user_id", query.Requester.UserID)
		return nil, errors.NewForbiddenError("You do not have access to this ticket")
	}
	return dto.ToTicketDTO(t, query.Requester.IsAdmin()), nil
}

// loadTicket accepts either form of reference: numbers start with the
// configured prefix, anything else is treated as an id.
func loadTicket(ctx context.Context, repo ticket.Repository, prefix, ref string) (*ticket.Ticket, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.NewValidationError("ticket reference is required")
	}
	if looksLikeNumber(prefix, ref) {
		return repo.GetByNumber(ctx, strings.ToUpper(ref))
	}
	return repo.GetByID(ctx, ref)
}

func looksLikeNumber(prefix, ref string) bool {
	if len(ref) <= len(prefix) || !strings.EqualFold(ref[:len(prefix)], prefix) {
		return false
	}
	for _, r := range ref[len(prefix):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
