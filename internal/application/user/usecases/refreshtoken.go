package usecases

import (
	"context"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/infrastructure/auth"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type RefreshTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRefreshTokenUseCase(userRepo user.Repository, tokens TokenIssuer, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userRepo: userRepo, tokens: tokens, logger: logger}
}

// Execute exchanges a refresh token for a new pair. The account is reloaded
// so role changes and deactivation take effect.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*dto.AuthResultDTO, error) {
	if refreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	var account *user.Account
	pair, err := uc.tokens.Refresh(refreshToken, func(userID string) (auth.Subject, error) {
		a, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return auth.Subject{}, err
		}
		if !a.IsActive() {
			return auth.Subject{}, errors.NewForbiddenError("Account is deactivated")
		}
		account = a
		return subjectOf(a), nil
	})
	if err != nil {
		if errors.IsAppError(err) && !errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Warnw("refresh token rejected", "error", err)
		return nil, errors.NewTokenInvalidError("Invalid or expired refresh token")
	}

	return &dto.AuthResultDTO{
		User:         dto.ToAccountDTO(account),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
