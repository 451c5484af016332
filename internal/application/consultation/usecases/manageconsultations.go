package usecases

import (
	"context"
	"fmt"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/consultation/dto"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type ListConsultationsQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Status    string
	Search    string
}

type ListConsultationsUseCase struct {
	repo   consultation.Repository
	logger logger.Interface
}

func NewListConsultationsUseCase(repo consultation.Repository, logger logger.Interface) *ListConsultationsUseCase {
	return &ListConsultationsUseCase{repo: repo, logger: logger}
}

func (uc *ListConsultationsUseCase) Execute(ctx context.Context, q ListConsultationsQuery) (*common.Page[*dto.ConsultationDTO], error) {
	filter := consultation.Filter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, q.SortBy, q.SortOrder),
		Search:     q.Search,
	}
	if q.Status != "" {
		s := consultation.Status(q.Status)
		if !s.IsValid() {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid status: %s", q.Status))
		}
		filter.Status = &s
	}
	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list consultations", "error", err)
		return nil, err
	}
	return common.NewPage(dto.ToConsultationDTOs(items), total, filter.PageFilter), nil
}

type UpdateConsultationStatusCommand struct {
	ID     string
	Status string
	Notes  string
}

type UpdateConsultationStatusUseCase struct {
	repo   consultation.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewUpdateConsultationStatusUseCase(repo consultation.Repository, logger logger.Interface) *UpdateConsultationStatusUseCase {
	return &UpdateConsultationStatusUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

func (uc *UpdateConsultationStatusUseCase) Execute(ctx context.Context, cmd UpdateConsultationStatusCommand) (*dto.ConsultationDTO, error) {
	c, err := uc.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateStatus(consultation.Status(cmd.Status), cmd.Notes, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update consultation", "consultation_id", cmd.ID, "error", err)
		return nil, err
	}
	uc.logger.Infow("consultation status updated", "consultation_id", cmd.ID, "status", cmd.Status)
	return dto.ToConsultationDTO(c), nil
}

type DeleteConsultationUseCase struct {
	repo   consultation.Repository
	logger logger.Interface
}

func NewDeleteConsultationUseCase(repo consultation.Repository, logger logger.Interface) *DeleteConsultationUseCase {
	return &DeleteConsultationUseCase{repo: repo, logger: logger}
}

func (uc *DeleteConsultationUseCase) Execute(ctx context.Context, id string) error {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
