package usecases

import (
	"context"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Ref       string
	Requester Requester
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	prefix     string
	effects    *Effects
	logger     logger.Interface
}

func NewDeleteTicketUseCase(ticketRepo ticket.Repository, numberPrefix string, effects *Effects, logger logger.Interface) *DeleteTicketUseCase {
	if numberPrefix == "" {
		numberPrefix = ticket.DefaultNumberPrefix
	}
	return &DeleteTicketUseCase{ticketRepo: ticketRepo, prefix: numberPrefix, effects: effects, logger: logger}
}

// Execute removes the ticket together with its responses.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	if !cmd.Requester.IsAdmin() {
		return errors.NewForbiddenError("Admin access required")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.prefix, cmd.Ref)
	if err != nil {
		return err
	}
	if err := uc.ticketRepo.Delete(ctx, t.ID()); err != nil {
		uc.logger.Errorw("failed to delete ticket", "error", err, "ticket_id", t.ID())
		return err
	}

	uc.logger.Infow("ticket deleted", "ticket_number", t.Number(), "by", cmd.Requester.UserID)
	uc.effects.publish(ticket.NewEvent(ticket.EventDeleted, t, cmd.Requester.UserID, biztime.NowUTC()))
	return nil
}
