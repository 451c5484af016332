package usecases

import (
	"context"
	"strings"
	"time"

	"remotcyberhelp/internal/domain/user"
	vo "remotcyberhelp/internal/domain/user/valueobjects"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

const DefaultResetCodeTTL = 15 * time.Minute

type RequestPasswordResetUseCase struct {
	userRepo user.Repository
	mailer   ResetCodeMailer
	codes    CodeGenerator
	ttl      time.Duration
	logger   logger.Interface
}

func NewRequestPasswordResetUseCase(
	userRepo user.Repository,
	mailer ResetCodeMailer,
	codes CodeGenerator,
	ttl time.Duration,
	logger logger.Interface,
) *RequestPasswordResetUseCase {
	if codes == nil {
		codes = SixDigitCode
	}
	if ttl <= 0 {
		ttl = DefaultResetCodeTTL
	}
	return &RequestPasswordResetUseCase{userRepo: userRepo, mailer: mailer, codes: codes, ttl: ttl, logger: logger}
}

// Execute mails a verification code. Unknown addresses succeed silently.
// A mail failure fails the request so the user knows to retry.
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	account, err := uc.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Infow("password reset requested for unknown email")
			return nil
		}
		uc.logger.Errorw("failed to get account by email", "error", err)
		return err
	}
	if !account.IsActive() {
		uc.logger.Infow("password reset requested for deactivated account", "user_id", account.ID())
		return nil
	}

	code, err := uc.codes()
	if err != nil {
		return errors.NewInternalError("Failed to generate verification code")
	}
	account.IssueResetCode(code, uc.ttl, biztime.NowUTC())
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to store reset code", "error", err, "user_id", account.ID())
		return err
	}

	if err := uc.mailer.SendPasswordResetCode(ctx, account.Email(), account.Name(), code, int(uc.ttl.Minutes())); err != nil {
		uc.logger.Errorw("failed to send password reset email", "error", err, "user_id", account.ID())
		return errors.NewServiceUnavailableError("Failed to send verification email, please try again later")
	}

	uc.logger.Infow("password reset code sent", "user_id", account.ID())
	return nil
}

type VerifyResetCodeUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewVerifyResetCodeUseCase(userRepo user.Repository, logger logger.Interface) *VerifyResetCodeUseCase {
	return &VerifyResetCodeUseCase{userRepo: userRepo, logger: logger}
}

func (uc *VerifyResetCodeUseCase) Execute(ctx context.Context, emailAddr, code string) error {
	account, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("Invalid verification code")
		}
		return err
	}
	return account.VerifyResetCode(strings.TrimSpace(code), biztime.NowUTC())
}

type ResetPasswordCommand struct {
	Email       string
	Code        string
	NewPassword string
}

type ResetPasswordUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewResetPasswordUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

// Execute sets a new password with a valid code and clears any lockout.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	password, err := vo.NewPassword(cmd.NewPassword)
	if err != nil {
		return errors.NewValidationError("Validation failed").
			WithFields(errors.FieldError{Field: "newPassword", Message: err.Error()})
	}

	account, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError("Invalid verification code")
		}
		return err
	}

	now := biztime.NowUTC()
	if err := account.VerifyResetCode(strings.TrimSpace(cmd.Code), now); err != nil {
		return err
	}
	hash, err := uc.hasher.Hash(password.String())
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return errors.NewInternalError("Failed to reset password")
	}
	if err := account.ResetPassword(strings.TrimSpace(cmd.Code), hash, now); err != nil {
		return err
	}
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to save reset password", "error", err, "user_id", account.ID())
		return err
	}

	uc.logger.Infow("password reset completed", "user_id", account.ID())
	return nil
}

type CleanupResetCodesUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewCleanupResetCodesUseCase(userRepo user.Repository, logger logger.Interface) *CleanupResetCodesUseCase {
	return &CleanupResetCodesUseCase{userRepo: userRepo, logger: logger}
}

func (uc *CleanupResetCodesUseCase) Execute(ctx context.Context) (int64, error) {
	n, err := uc.userRepo.ClearExpiredResetCodes(ctx, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to clear expired reset codes", "error", err)
		return 0, err
	}
	if n > 0 {
		uc.logger.Infow("expired reset codes cleared", "count", n)
	}
	return n, nil
}
