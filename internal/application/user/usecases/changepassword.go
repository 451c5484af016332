package usecases

import (
	"context"

	"remotcyberhelp/internal/domain/user"
	vo "remotcyberhelp/internal/domain/user/valueobjects"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if !account.VerifyPassword(cmd.CurrentPassword, uc.hasher) {
		return errors.NewInvalidCredentialsError("Current password is incorrect")
	}

	password, err := vo.NewPassword(cmd.NewPassword)
	if err != nil {
		return errors.NewValidationError("Validation failed").
			WithFields(errors.FieldError{Field: "newPassword", Message: err.Error()})
	}
	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return errors.NewInternalError("Failed to change password")
	}

	account.ChangePassword(hash, biztime.NowUTC())
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to update password", "error", err, "user_id", account.ID())
		return err
	}

	uc.logger.Infow("password changed", "user_id", account.ID())
	return nil
}
