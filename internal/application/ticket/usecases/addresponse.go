package usecases

import (
	"context"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type AddResponseCommand struct {
	Ref         string
	Message     string
	Attachments []ticket.Attachment
	Requester   Requester
}

type AddResponseUseCase struct {
	ticketRepo ticket.Repository
	txManager  TxRunner
	prefix     string
	effects    *Effects
	logger     logger.Interface
}

func NewAddResponseUseCase(
	ticketRepo ticket.Repository,
	txManager TxRunner,
	numberPrefix string,
	effects *Effects,
	logger logger.Interface,
) *AddResponseUseCase {
	if numberPrefix == "" {
		numberPrefix = ticket.DefaultNumberPrefix
	}
	return &AddResponseUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		prefix:     numberPrefix,
		effects:    effects,
		logger:     logger,
	}
}

// Execute appends a reply to the thread. Admin replies notify the customer,
// customer replies alert the admins.
func (uc *AddResponseUseCase) Execute(ctx context.Context, cmd AddResponseCommand) (*dto.ResponseDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, uc.prefix, cmd.Ref)
	if err != nil {
		return nil, err
	}
	if !cmd.Requester.canAccess(t) {
		return nil, errors.NewForbiddenError("You do not have access to this ticket")
	}

	isAdmin := cmd.Requester.IsAdmin()
	now := biztime.NowUTC()
	response, err := ticket.NewResponse(t.ID(), cmd.Message, isAdmin, cmd.Requester.UserID, cmd.Attachments, now)
	if err != nil {
		return nil, err
	}
	t.RecordResponse(now)

	err = uc.runInTx(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.AddResponse(txCtx, response); err != nil {
			return err
		}
		return uc.ticketRepo.Update(txCtx, t)
	})
	if err != nil {
		uc.logger.Errorw("failed to add ticket response", "error", err, "ticket_id", t.ID())
		return nil, err
	}

	uc.logger.Infow("ticket response added", "ticket_number", t.Number(), "admin", isAdmin)

	uc.effects.publish(ticket.NewEvent(ticket.EventResponded, t, cmd.Requester.UserID, now))
	mail := email.ResponseMail{TicketMail: toMail(t), Message: response.Message(), FromAdmin: isAdmin}
	if !isAdmin || t.Email() != "" {
		uc.effects.notify("ticket_response", func(ctx context.Context, n TicketNotifier) error {
			return n.SendTicketResponse(ctx, mail)
		})
	}

	out := dto.ToResponseDTO(response)
	return &out, nil
}

func (uc *AddResponseUseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if uc.txManager == nil {
		return fn(ctx)
	}
	return uc.txManager.RunInTransaction(ctx, fn)
}
