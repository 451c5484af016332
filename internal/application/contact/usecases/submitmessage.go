package usecases

import (
	"context"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/contact/dto"
	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/logger"
)

type ContactNotifier interface {
	SendContactAlert(ctx context.Context, c email.ContactMail) error
	SendContactAutoReply(ctx context.Context, c email.ContactMail) error
}

type SubmitMessageCommand struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Service string
	Message string
}

type SubmitMessageUseCase struct {
	repo     contact.Repository
	notifier ContactNotifier
	effects  *common.BestEffort
	logger   logger.Interface
	now      func() time.Time
}

func NewSubmitMessageUseCase(repo contact.Repository, notifier ContactNotifier, effects *common.BestEffort, logger logger.Interface) *SubmitMessageUseCase {
	return &SubmitMessageUseCase{
		repo:     repo,
		notifier: notifier,
		effects:  effects,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

// Execute stores the message, then alerts admins and acknowledges the sender.
func (uc *SubmitMessageUseCase) Execute(ctx context.Context, cmd SubmitMessageCommand) (*dto.MessageDTO, error) {
	m, err := contact.NewMessage(cmd.Name, cmd.Email, cmd.Phone, cmd.Subject, cmd.Service, cmd.Message, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		uc.logger.Errorw("failed to store contact message", "error", err)
		return nil, err
	}
	uc.logger.Infow("contact message received", "message_id", m.ID(), "service", m.Service())

	if uc.notifier != nil {
		mail := email.ContactMail{
			Name:    m.Name(),
			Email:   m.Email(),
			Phone:   m.Phone(),
			Subject: m.Subject(),
			Service: m.Service(),
			Message: m.Body(),
		}
		uc.effects.Go("contact_alert", func(ctx context.Context) error {
			return uc.notifier.SendContactAlert(ctx, mail)
		})
		uc.effects.Go("contact_auto_reply", func(ctx context.Context) error {
			return uc.notifier.SendContactAutoReply(ctx, mail)
		})
	}
	return dto.ToMessageDTO(m), nil
}
