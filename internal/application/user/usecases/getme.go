package usecases

import (
	"context"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/logger"
)

type GetMeUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetMeUseCase(userRepo user.Repository, logger logger.Interface) *GetMeUseCase {
	return &GetMeUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, userID string) (*dto.AccountDTO, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToAccountDTO(account), nil
}
