package usecases

import (
	"context"
	"fmt"
	"time"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/contact/dto"
	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type ListMessagesQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Status    string
	Search    string
}

type ListMessagesUseCase struct {
	repo   contact.Repository
	logger logger.Interface
}

func NewListMessagesUseCase(repo contact.Repository, logger logger.Interface) *ListMessagesUseCase {
	return &ListMessagesUseCase{repo: repo, logger: logger}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, q ListMessagesQuery) (*common.Page[*dto.MessageDTO], error) {
	filter := contact.Filter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, q.SortBy, q.SortOrder),
		Search:     q.Search,
	}
	if q.Status != "" {
		s := contact.Status(q.Status)
		if !s.IsValid() {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid status: %s", q.Status))
		}
		filter.Status = &s
	}

	msgs, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list contact messages", "error", err)
		return nil, err
	}
	return common.NewPage(dto.ToMessageDTOs(msgs), total, filter.PageFilter), nil
}

type UpdateMessageStatusUseCase struct {
	repo   contact.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewUpdateMessageStatusUseCase(repo contact.Repository, logger logger.Interface) *UpdateMessageStatusUseCase {
	return &UpdateMessageStatusUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

func (uc *UpdateMessageStatusUseCase) Execute(ctx context.Context, id, status string) (*dto.MessageDTO, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.MarkStatus(contact.Status(status), uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update contact message", "message_id", id, "error", err)
		return nil, err
	}
	return dto.ToMessageDTO(m), nil
}

type DeleteMessageUseCase struct {
	repo   contact.Repository
	logger logger.Interface
}

func NewDeleteMessageUseCase(repo contact.Repository, logger logger.Interface) *DeleteMessageUseCase {
	return &DeleteMessageUseCase{repo: repo, logger: logger}
}

func (uc *DeleteMessageUseCase) Execute(ctx context.Context, id string) error {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete contact message", "message_id", id, "error", err)
		return err
	}
	uc.logger.Infow("contact message deleted", "message_id", id)
	return nil
}
