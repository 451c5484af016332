package usecases

import (
	"context"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type AssignTicketCommand struct {
	Ref       string
	AdminID   string
	Requester Requester
}

type AssignTicketUseCase struct {
	ticketRepo ticket.Repository
	prefix     string
	effects    *Effects
	logger     logger.Interface
}

func NewAssignTicketUseCase(ticketRepo ticket.Repository, numberPrefix string, effects *Effects, logger logger.Interface) *AssignTicketUseCase {
	if numberPrefix == "" {
		numberPrefix = ticket.DefaultNumberPrefix
	}
	return &AssignTicketUseCase{ticketRepo: ticketRepo, prefix: numberPrefix, effects: effects, logger: logger}
}

// Execute assigns the ticket to AdminID, or to the requester when AdminID is empty.
func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	if !cmd.Requester.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}
	adminID := cmd.AdminID
	if adminID == "" {
		adminID = cmd.Requester.UserID
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.prefix, cmd.Ref)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	if err := t.AssignTo(adminID, now); err != nil {
		return nil, err
	}
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to assign ticket", "error", err, "ticket_id", t.ID())
		return nil, err
	}

	uc.logger.Infow("ticket assigned", "ticket_number", t.Number(), "assigned_to", adminID)
	uc.effects.recordStatus(t)
	uc.effects.publish(ticket.NewEvent(ticket.EventAssigned, t, cmd.Requester.UserID, now))

	return dto.ToTicketDTO(t, true), nil
}
