package usecases

import (
	"context"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/consultation/dto"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/domain/workinghours"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

// SlotLength is the length of a bookable consultation slot.
const SlotLength = time.Hour

type ConsultationNotifier interface {
	SendConsultationAlert(ctx context.Context, c email.ConsultationMail) error
	SendConsultationConfirmation(ctx context.Context, c email.ConsultationMail) error
}

type BookConsultationCommand struct {
	Name          string
	Email         string
	Phone         string
	ServiceType   string
	PreferredDate string
	PreferredTime string
	Mode          string
	Message       string
}

type BookConsultationUseCase struct {
	repo     consultation.Repository
	hours    workinghours.Repository
	notifier ConsultationNotifier
	effects  *common.BestEffort
	logger   logger.Interface
	now      func() time.Time
}

func NewBookConsultationUseCase(
	repo consultation.Repository,
	hours workinghours.Repository,
	notifier ConsultationNotifier,
	effects *common.BestEffort,
	logger logger.Interface,
) *BookConsultationUseCase {
	return &BookConsultationUseCase{
		repo:     repo,
		hours:    hours,
		notifier: notifier,
		effects:  effects,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

func (uc *BookConsultationUseCase) Execute(ctx context.Context, cmd BookConsultationCommand) (*dto.ConsultationDTO, error) {
	start, err := biztime.ParseDateTime(cmd.PreferredDate, cmd.PreferredTime)
	if err != nil {
		return nil, errors.NewValidationError("invalid preferred date or time").WithFields(
			errors.FieldError{Field: "preferredDate", Message: "use YYYY-MM-DD"},
			errors.FieldError{Field: "preferredTime", Message: "use HH:MM"},
		)
	}

	c, err := consultation.NewConsultation(consultation.NewParams{
		Name:        cmd.Name,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		ServiceType: cmd.ServiceType,
		Mode:        consultation.Mode(cmd.Mode),
		ScheduledAt: start,
		Duration:    SlotLength,
		Message:     cmd.Message,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	schedule, err := workinghours.Load(ctx, uc.hours)
	if err != nil {
		uc.logger.Errorw("failed to load working hours", "error", err)
		return nil, err
	}
	open, closing, ok := schedule.Window(start, biztime.Location())
	if !ok || start.Before(open) || c.EndsAt().After(closing) {
		return nil, errors.NewValidationError("preferred time is outside working hours")
	}

	existing, err := uc.repo.ListActiveBetween(ctx, start, c.EndsAt())
	if err != nil {
		uc.logger.Errorw("failed to check consultation overlap", "error", err)
		return nil, err
	}
	for _, other := range existing {
		if other.Overlaps(start, c.EndsAt()) {
			return nil, errors.NewConflictError("the selected time slot is already booked")
		}
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to store consultation", "error", err)
		return nil, err
	}
	uc.logger.Infow("consultation booked", "consultation_id", c.ID(), "scheduled_at", start)

	if uc.notifier != nil {
		mail := toMail(c)
		uc.effects.Go("consultation_alert", func(ctx context.Context) error {
			return uc.notifier.SendConsultationAlert(ctx, mail)
		})
		if mail.Email != "" {
			uc.effects.Go("consultation_confirmation", func(ctx context.Context) error {
				return uc.notifier.SendConsultationConfirmation(ctx, mail)
			})
		}
	}
	return dto.ToConsultationDTO(c), nil
}

func toMail(c *consultation.Consultation) email.ConsultationMail {
	s := c.State()
	return email.ConsultationMail{
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		ServiceType: s.ServiceType,
		Date:        biztime.FormatInBizTimezone(s.ScheduledAt, time.DateOnly),
		Time:        biztime.FormatInBizTimezone(s.ScheduledAt, "15:04"),
		Mode:        s.Mode,
		Message:     s.Message,
	}
}
