package usecases

import (
	"context"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/domain/user"
	vo "remotcyberhelp/internal/domain/user/valueobjects"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Password string
	Name     string
}

type RegisterUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRegisterUseCase(userRepo user.Repository, hasher user.PasswordHasher, tokens TokenIssuer, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, logger: logger}
}

// Execute creates a customer account and signs it in.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.AuthResultDTO, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("Validation failed").
			WithFields(errors.FieldError{Field: "email", Message: err.Error()})
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError("Validation failed").
			WithFields(errors.FieldError{Field: "password", Message: err.Error()})
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("An account with this email already exists")
	}

	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("Failed to create account")
	}

	account, err := user.NewAccount(email, cmd.Name, hash, authorization.RoleUser, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Create(ctx, account); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("An account with this email already exists")
		}
		uc.logger.Errorw("failed to create account", "error", err)
		return nil, err
	}

	uc.logger.Infow("account registered", "user_id", account.ID())
	return issueTokens(uc.tokens, account)
}
