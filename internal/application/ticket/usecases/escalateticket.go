package usecases

import (
	"context"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type EscalateTicketCommand struct {
	Ref       string
	Reason    string
	Requester Requester
}

type EscalateTicketUseCase struct {
	ticketRepo ticket.Repository
	prefix     string
	effects    *Effects
	logger     logger.Interface
}

func NewEscalateTicketUseCase(ticketRepo ticket.Repository, numberPrefix string, effects *Effects, logger logger.Interface) *EscalateTicketUseCase {
	if numberPrefix == "" {
		numberPrefix = ticket.DefaultNumberPrefix
	}
	return &EscalateTicketUseCase{ticketRepo: ticketRepo, prefix: numberPrefix, effects: effects, logger: logger}
}

func (uc *EscalateTicketUseCase) Execute(ctx context.Context, cmd EscalateTicketCommand) (*dto.TicketDTO, error) {
	if !cmd.Requester.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.prefix, cmd.Ref)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	if err := t.Escalate(cmd.Reason, cmd.Requester.UserID, now); err != nil {
		return nil, err
	}
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to escalate ticket", "error", err, "ticket_id", t.ID())
		return nil, err
	}

	uc.logger.Warnw("ticket escalated", "ticket_number", t.Number(), "reason", t.EscalationReason(), "by", cmd.Requester.UserID)
	uc.effects.publish(ticket.NewEvent(ticket.EventEscalated, t, cmd.Requester.UserID, now))

	// Escalation re-alerts the admin desk with the raised priority.
	mail := toMail(t)
	uc.effects.notify("ticket_alert", func(ctx context.Context, n TicketNotifier) error {
		return n.SendTicketAlert(ctx, mail)
	})

	return dto.ToTicketDTO(t, true), nil
}
