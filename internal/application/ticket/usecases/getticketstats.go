package usecases

import (
	"context"
	"math"
	"time"

	"remotcyberhelp/internal/application/ticket/dto"
	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	From       string // YYYY-MM-DD, business timezone
	To         string // inclusive
	AssignedTo string
	Requester  Requester
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, q GetTicketStatsQuery) (*dto.StatsDTO, error) {
	if !q.Requester.IsAdmin() {
		return nil, errors.NewForbiddenError("Admin access required")
	}

	filter := ticket.StatsFilter{AssignedTo: q.AssignedTo}
	if q.From != "" {
		from, err := biztime.ParseDate(q.From)
		if err != nil {
			return nil, errors.NewValidationError("invalid from date", err.Error())
		}
		from = from.UTC()
		filter.From = &from
	}
	if q.To != "" {
		to, err := biztime.ParseDate(q.To)
		if err != nil {
			return nil, errors.NewValidationError("invalid to date", err.Error())
		}
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond).UTC()
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errors.NewValidationError("from date must not be after to date")
	}

	tickets, err := uc.ticketRepo.ListForStats(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to load tickets for stats", "error", err)
		return nil, err
	}
	return computeStats(tickets), nil
}

func computeStats(tickets []*ticket.Ticket) *dto.StatsDTO {
	stats := &dto.StatsDTO{
		ByStatus:   make(map[string]int64),
		ByPriority: make(map[string]int64),
		ByCategory: make(map[string]int64),
		ByAssignee: make(map[string]int64),
	}
	for _, s := range vo.AllStatuses() {
		stats.ByStatus[s.String()] = 0
	}
	for _, p := range vo.AllPriorities() {
		stats.ByPriority[p.String()] = 0
	}

	var resolvedHours float64
	var resolvedWithTime int
	for _, t := range tickets {
		stats.Total++
		stats.ByStatus[t.Status().String()]++
		stats.ByPriority[t.Priority().String()]++
		stats.ByCategory[t.Category().String()]++
		if t.AssignedTo() != "" {
			stats.ByAssignee[t.AssignedTo()]++
		}

		switch t.Status() {
		case vo.StatusOpen:
			stats.OpenCount++
		case vo.StatusResolved, vo.StatusClosed:
			stats.ResolvedCount++
		}
		if t.Escalated() {
			stats.EscalatedCount++
		}
		if h, ok := t.ResolutionHours(); ok {
			resolvedHours += h
			resolvedWithTime++
		}
	}

	if resolvedWithTime > 0 {
		stats.AverageResolutionHours = math.Round(resolvedHours/float64(resolvedWithTime)*100) / 100
	}
	return stats
}
