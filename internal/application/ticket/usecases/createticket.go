package usecases

import (
	"context"
	"fmt"
	"strings"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type CreateTicketCommand struct {
	Subject      string
	Description  string
	Category     string
	Priority     string
	CustomerName string
	Phone        string
	Email        string
	UserID       string
	Metadata     map[string]interface{}
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.Repository
	allocator   NumberAllocator
	maxAttempts int
	effects     *Effects
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	allocator NumberAllocator,
	maxAttempts int,
	effects *Effects,
	logger logger.Interface,
) *CreateTicketUseCase {
	if maxAttempts <= 0 {
		maxAttempts = ticket.DefaultMaxAttempts
	}
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		allocator:   allocator,
		maxAttempts: maxAttempts,
		effects:     effects,
		logger:      logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.CreatedTicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "category", cmd.Category, "user_id", cmd.UserID)

	params, err := uc.buildParams(cmd)
	if err != nil {
		return nil, err
	}

	// A duplicate on insert means a number slipped past the allocator's
	// existence check (a concurrent legacy insert). Allocate again.
	var lastErr error
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		number, err := uc.allocator.Allocate(ctx)
		if err != nil {
			if errors.IsAllocationError(err) {
				uc.effects.recordAllocationFailure()
			}
			uc.logger.Errorw("failed to allocate ticket number", "error", err)
			return nil, err
		}

		t, err := ticket.NewTicket(params, biztime.NowUTC())
		if err != nil {
			return nil, err
		}
		if err := t.SetNumber(number); err != nil {
			return nil, err
		}

		err = uc.ticketRepo.Create(ctx, t)
		if err == nil {
			uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "ticket_number", number)
			uc.afterCreate(t)
			return dto.ToCreatedTicketDTO(t), nil
		}
		if !errors.IsConflictError(err) && !errors.IsDuplicateError(err) {
			uc.logger.Errorw("failed to save ticket", "error", err, "ticket_number", number)
			return nil, err
		}
		uc.logger.Warnw("ticket number collided on insert, retrying", "ticket_number", number, "attempt", attempt)
		lastErr = err
	}

	uc.effects.recordAllocationFailure()
	return nil, errors.NewAllocationError(
		"Unable to generate a ticket number, please try again",
		fmt.Sprintf("insert collided %d times: %v", uc.maxAttempts, lastErr),
	)
}

func (uc *CreateTicketUseCase) buildParams(cmd CreateTicketCommand) (ticket.NewTicketParams, error) {
	var fields []errors.FieldError
	if strings.TrimSpace(cmd.Description) == "" {
		fields = append(fields, errors.FieldError{Field: "description", Message: "description is required"})
	}
	if strings.TrimSpace(cmd.CustomerName) == "" && cmd.UserID == "" {
		fields = append(fields, errors.FieldError{Field: "firstName", Message: "name is required"})
	}
	if strings.TrimSpace(cmd.Phone) == "" && strings.TrimSpace(cmd.Email) == "" && cmd.UserID == "" {
		fields = append(fields, errors.FieldError{Field: "phone", Message: "phone or email is required"})
	}

	category, ok := vo.NormalizeCategory(cmd.Category)
	if !ok {
		fields = append(fields, errors.FieldError{Field: "issueCategory", Message: "invalid or missing issue category"})
	}
	priority, err := vo.ParsePriority(cmd.Priority)
	if err != nil {
		fields = append(fields, errors.FieldError{Field: "priority", Message: "priority must be one of low, medium, high, critical"})
	}

	if len(fields) > 0 {
		return ticket.NewTicketParams{}, errors.NewValidationError("Validation failed").WithFields(fields...)
	}

	return ticket.NewTicketParams{
		Subject:      cmd.Subject,
		Description:  cmd.Description,
		Category:     category,
		Priority:     priority,
		CustomerName: cmd.CustomerName,
		Phone:        cmd.Phone,
		Email:        cmd.Email,
		UserID:       cmd.UserID,
		Metadata:     cmd.Metadata,
	}, nil
}

func (uc *CreateTicketUseCase) afterCreate(t *ticket.Ticket) {
	uc.effects.recordCreated(t)
	uc.effects.publish(ticket.NewEvent(ticket.EventCreated, t, t.UserID(), t.CreatedAt()))

	mail := toMail(t)
	if mail.Email != "" {
		uc.effects.notify("ticket_confirmation", func(ctx context.Context, n TicketNotifier) error {
			return n.SendTicketConfirmation(ctx, mail)
		})
	}
	uc.effects.notify("ticket_alert", func(ctx context.Context, n TicketNotifier) error {
		return n.SendTicketAlert(ctx, mail)
	})
}
