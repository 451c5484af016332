package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/government/dto"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type TrackRequestUseCase struct {
	requests government.RequestRepository
}

func NewTrackRequestUseCase(requests government.RequestRepository) *TrackRequestUseCase {
	return &TrackRequestUseCase{requests: requests}
}

// Execute looks a request up by reference. The email must match the one
// on the request, otherwise the request is reported as not found.
func (uc *TrackRequestUseCase) Execute(ctx context.Context, reference, email string) (*dto.RequestDTO, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	email = strings.ToLower(strings.TrimSpace(email))
	if reference == "" || email == "" {
		return nil, errors.NewValidationError("reference and email are required")
	}
	req, err := uc.requests.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if req.Email() != email {
		return nil, errors.NewNotFoundError("request not found")
	}
	return dto.ToRequestDTO(req, false), nil
}

type ListRequestsQuery struct {
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
	Status      string
	ServiceCode string
	Search      string
}

type ListRequestsUseCase struct {
	requests government.RequestRepository
	logger   logger.Interface
}

func NewListRequestsUseCase(requests government.RequestRepository, logger logger.Interface) *ListRequestsUseCase {
	return &ListRequestsUseCase{requests: requests, logger: logger}
}

func (uc *ListRequestsUseCase) Execute(ctx context.Context, q ListRequestsQuery) (*common.Page[*dto.RequestDTO], error) {
	filter := government.RequestFilter{
		BaseFilter:  query.NewBaseFilter(q.Page, q.PageSize, q.SortBy, q.SortOrder),
		ServiceCode: strings.ToLower(strings.TrimSpace(q.ServiceCode)),
		Search:      q.Search,
	}
	if q.Status != "" {
		s := government.RequestStatus(q.Status)
		if !s.IsValid() {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid status: %s", q.Status))
		}
		filter.Status = &s
	}
	list, total, err := uc.requests.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list government requests", "error", err)
		return nil, err
	}
	items := make([]*dto.RequestDTO, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ToRequestDTO(r, true))
	}
	return common.NewPage(items, total, filter.PageFilter), nil
}

type UpdateRequestStatusCommand struct {
	Reference string
	Status    string
	Notes     string
}

type UpdateRequestStatusUseCase struct {
	requests government.RequestRepository
	logger   logger.Interface
	now      func() time.Time
}

func NewUpdateRequestStatusUseCase(requests government.RequestRepository, logger logger.Interface) *UpdateRequestStatusUseCase {
	return &UpdateRequestStatusUseCase{requests: requests, logger: logger, now: biztime.NowUTC}
}

func (uc *UpdateRequestStatusUseCase) Execute(ctx context.Context, cmd UpdateRequestStatusCommand) (*dto.RequestDTO, error) {
	req, err := uc.requests.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(cmd.Reference)))
	if err != nil {
		return nil, err
	}
	if err := req.UpdateStatus(government.RequestStatus(cmd.Status), cmd.Notes, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.requests.Update(ctx, req); err != nil {
		uc.logger.Errorw("failed to update government request", "reference", cmd.Reference, "error", err)
		return nil, err
	}
	uc.logger.Infow("government request status updated", "reference", req.Reference(), "status", cmd.Status)
	return dto.ToRequestDTO(req, true), nil
}
