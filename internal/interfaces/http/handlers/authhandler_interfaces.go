package handlers

import (
	"context"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler - enables unit testing with mocks.

type registerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterCommand) (*dto.AuthResultDTO, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.AuthResultDTO, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, refreshToken string) (*dto.AuthResultDTO, error)
}

type getMeUseCase interface {
	Execute(ctx context.Context, userID string) (*dto.AccountDTO, error)
}

type changePasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type requestPasswordResetUseCase interface {
	Execute(ctx context.Context, email string) error
}

type verifyResetCodeUseCase interface {
	Execute(ctx context.Context, email, code string) error
}

type resetPasswordUseCase interface {
	Execute(ctx context.Context, cmd usecases.ResetPasswordCommand) error
}

type listAccountsUseCase interface {
	Execute(ctx context.Context, q usecases.ListAccountsQuery) (*usecases.ListAccountsResult, error)
}

type changeRoleUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangeRoleCommand) (*dto.AccountDTO, error)
}

type unlockAccountUseCase interface {
	Execute(ctx context.Context, userID, actorID string) (*dto.AccountDTO, error)
}

type setAccountActiveUseCase interface {
	Execute(ctx context.Context, userID string, active bool, actorID string) (*dto.AccountDTO, error)
}
