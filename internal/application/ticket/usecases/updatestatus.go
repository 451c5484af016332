package usecases

import (
	"context"
	"strings"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type UpdateStatusCommand struct {
	Ref        string
	Status     string
	AdminNotes *string
	AssignedTo string
	Requester  Requester
}

type UpdateStatusUseCase struct {
	ticketRepo ticket.Repository
	prefix     string
	mode       ticket.TransitionMode
	effects    *Effects
	logger     logger.Interface
}

func NewUpdateStatusUseCase(
	ticketRepo ticket.Repository,
	numberPrefix string,
	strict bool,
	effects *Effects,
	logger logger.Interface,
) *UpdateStatusUseCase {
	mode := ticket.TransitionPermissive
	if strict {
		mode = ticket.TransitionStrict
	}
	if numberPrefix == "" {
		numberPrefix = ticket.DefaultNumberPrefix
	}
	return &UpdateStatusUseCase{
		ticketRepo: ticketRepo,
		prefix:     numberPrefix,
		mode:       mode,
		effects:    effects,
		logger:     logger,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.TicketDTO, error) {
	if !cmd.Requester.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}

	status, err := vo.ParseStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := loadTicket(ctx, uc.ticketRepo, uc.prefix, cmd.Ref)
	if err != nil {
		return nil, err
	}
	previous := t.Status()
	now := biztime.NowUTC()

	if assignee := strings.TrimSpace(cmd.AssignedTo); assignee != "" && assignee != t.AssignedTo() {
		if err := t.AssignTo(assignee, now); err != nil {
			return nil, err
		}
	}
	if err := t.ChangeStatus(status, uc.mode, now); err != nil {
		return nil, err
	}
	if cmd.AdminNotes != nil {
		t.SetAdminNotes(*cmd.AdminNotes)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket status", "error", err, "ticket_id", t.ID())
		return nil, err
	}

	uc.logger.Infow("ticket status updated",
		"ticket_number", t.Number(),
		"from", previous,
		"to", status,
		"by", cmd.Requester.UserID,
	)

	uc.effects.recordStatus(t)
	uc.effects.publish(ticket.NewEvent(ticket.EventStatusChanged, t, cmd.Requester.UserID, now))
	if previous != status && t.Email() != "" {
		mail := toMail(t)
		uc.effects.notify("ticket_status", func(ctx context.Context, n TicketNotifier) error {
			return n.SendTicketStatusChanged(ctx, mail)
		})
	}

	return dto.ToTicketDTO(t, true), nil
}
