package usecases

import (
	"context"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type ListTicketsQuery struct {
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
	Status     string
	Priority   string
	Category   string
	AssignedTo string
	Escalated  *bool
	Search     string
	Requester  Requester
}

type ListTicketsResult struct {
	Tickets []*dto.TicketDTO
	Total   int64
	Page    int
	Limit   int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute lists every ticket for admins and only the caller's own tickets otherwise.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	if !q.Requester.IsAdmin() {
		if q.Requester.UserID == "" && q.Requester.Email == "" {
			return nil, errors.NewUnauthorizedError("Authentication required")
		}
		filter.OwnerID = q.Requester.UserID
		filter.OwnerEmail = q.Requester.Email
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	return &ListTicketsResult{
		Tickets: dto.ToTicketDTOs(tickets, q.Requester.IsAdmin()),
		Total:   total,
		Page:    max(filter.Page, 1),
		Limit:   filter.Limit(),
	}, nil
}

func buildFilter(q ListTicketsQuery) (ticket.Filter, error) {
	filter := ticket.Filter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, q.SortBy, q.SortOrder),
		AssignedTo: q.AssignedTo,
		Escalated:  q.Escalated,
		Search:     q.Search,
	}

	if q.Status != "" {
		s, err := vo.ParseStatus(q.Status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}
	if q.Priority != "" {
		p, err := vo.ParsePriority(q.Priority)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if q.Category != "" {
		c, err := vo.ParseCategory(q.Category)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Category = &c
	}
	return filter, nil
}
