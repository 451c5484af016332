package usecases

import (
	"context"
	"strings"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   TokenIssuer
	policy   user.SecurityPolicy
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	policy user.SecurityPolicy,
	logger logger.Interface,
) *LoginUseCase {
	defaults := user.DefaultSecurityPolicy()
	if policy.MaxLoginAttempts <= 0 {
		policy.MaxLoginAttempts = defaults.MaxLoginAttempts
	}
	if policy.LockDuration <= 0 {
		policy.LockDuration = defaults.LockDuration
	}
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, policy: policy, logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResultDTO, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	account, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			// Same answer as a wrong password so addresses cannot be probed.
			return nil, errors.NewInvalidCredentialsError("Invalid email or password")
		}
		uc.logger.Errorw("failed to get account by email", "error", err)
		return nil, err
	}

	authErr := account.Authenticate(cmd.Password, uc.hasher, uc.policy, biztime.NowUTC())

	// The lockout counter changes on every outcome.
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to persist login state", "error", err, "user_id", account.ID())
		if authErr == nil {
			return nil, err
		}
	}

	if authErr != nil {
		uc.logger.Warnw("login failed",
			"user_id", account.ID(),
			"attempts", account.LoginAttempts(),
			"locked", account.IsLocked(biztime.NowUTC()),
		)
		return nil, authErr
	}

	uc.logger.Infow("user logged in successfully", "user_id", account.ID())
	return issueTokens(uc.tokens, account)
}
