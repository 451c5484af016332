package usecases

import (
	"context"
	"strings"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/government/dto"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type ReferenceAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

type GovernmentNotifier interface {
	SendGovernmentConfirmation(ctx context.Context, g email.GovernmentMail) error
	SendGovernmentAlert(ctx context.Context, g email.GovernmentMail) error
}

type SubmitRequestCommand struct {
	ServiceCode string
	FullName    string
	Email       string
	Phone       string
	IDNumber    string
	Details     string
}

type SubmitRequestUseCase struct {
	requests    government.RequestRepository
	services    government.ServiceRepository
	allocator   ReferenceAllocator
	maxAttempts int
	notifier    GovernmentNotifier
	effects     *common.BestEffort
	logger      logger.Interface
	now         func() time.Time
}

func NewSubmitRequestUseCase(
	requests government.RequestRepository,
	services government.ServiceRepository,
	allocator ReferenceAllocator,
	maxAttempts int,
	notifier GovernmentNotifier,
	effects *common.BestEffort,
	logger logger.Interface,
) *SubmitRequestUseCase {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &SubmitRequestUseCase{
		requests:    requests,
		services:    services,
		allocator:   allocator,
		maxAttempts: maxAttempts,
		notifier:    notifier,
		effects:     effects,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *SubmitRequestUseCase) Execute(ctx context.Context, cmd SubmitRequestCommand) (*dto.RequestDTO, error) {
	code := strings.ToLower(strings.TrimSpace(cmd.ServiceCode))
	if code == "" {
		return nil, errors.NewValidationError("serviceCode is required").WithFields(
			errors.FieldError{Field: "serviceCode", Message: "required"})
	}
	svc, err := uc.services.GetByCode(ctx, code)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewValidationError("unknown service: " + code)
		}
		return nil, err
	}
	params := government.NewRequestParams{
		FullName: cmd.FullName,
		Email:    cmd.Email,
		Phone:    cmd.Phone,
		IDNumber: cmd.IDNumber,
		Details:  cmd.Details,
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		ref, err := uc.allocator.Allocate(ctx)
		if err != nil {
			uc.logger.Errorw("failed to allocate request reference", "error", err)
			return nil, err
		}
		req, err := government.NewRequest(svc, params, uc.now())
		if err != nil {
			return nil, err
		}
		if err := req.SetReference(ref); err != nil {
			return nil, err
		}

		err = uc.requests.Create(ctx, req)
		if err == nil {
			uc.logger.Infow("government request submitted", "reference", ref, "service", svc.Code)
			uc.notify(req, cmd.Phone)
			return dto.ToRequestDTO(req, false), nil
		}
		if errors.IsConflictError(err) || errors.IsDuplicateError(err) {
			uc.logger.Warnw("request reference collided, retrying", "reference", ref, "attempt", attempt)
			continue
		}
		uc.logger.Errorw("failed to store government request", "reference", ref, "error", err)
		return nil, err
	}
	return nil, errors.NewAllocationError("could not allocate a unique request reference")
}

func (uc *SubmitRequestUseCase) notify(req *government.Request, phone string) {
	if uc.notifier == nil {
		return
	}
	mail := email.GovernmentMail{
		Reference:   req.Reference(),
		ServiceName: req.ServiceName(),
		FullName:    req.FullName(),
		Email:       req.Email(),
		Phone:       phone,
	}
	uc.effects.Go("government_confirmation", func(ctx context.Context) error {
		return uc.notifier.SendGovernmentConfirmation(ctx, mail)
	})
	uc.effects.Go("government_alert", func(ctx context.Context) error {
		return uc.notifier.SendGovernmentAlert(ctx, mail)
	})
}
