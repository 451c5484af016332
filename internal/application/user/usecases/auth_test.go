package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/domain/user"
	vo "remotcyberhelp/internal/domain/user/valueobjects"
	"remotcyberhelp/internal/shared/authorization"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

func newAccount(t *testing.T, email, password string, role authorization.UserRole) *user.Account {
	t.Helper()
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	hash, _ := plainHasher{}.Hash(password)
	a, err := user.NewAccount(e, "Jane", hash, role, time.Now())
	require.NoError(t, err)
	return a
}

func TestRegisterUseCase_Execute(t *testing.T) {
	repo, _ := storeRepo(newAccount(t, "taken@example.com", "secret123", authorization.RoleUser))
	uc := NewRegisterUseCase(repo, plainHasher{}, &mockTokenIssuer{}, logger.NewNopLogger())

	tests := []struct {
		name    string
		cmd     RegisterCommand
		wantErr func(error) bool
	}{
		{name: "new customer", cmd: RegisterCommand{Email: "New@Example.com", Password: "secret123", Name: "New"}},
		{name: "duplicate email", cmd: RegisterCommand{Email: "taken@example.com", Password: "secret123"}, wantErr: apperrors.IsConflictError},
		{name: "bad email", cmd: RegisterCommand{Email: "nope", Password: "secret123"}, wantErr: apperrors.IsValidationError},
		{name: "weak password", cmd: RegisterCommand{Email: "weak@example.com", Password: "short"}, wantErr: apperrors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(context.Background(), tt.cmd)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "new@example.com", result.User.Email)
			assert.Equal(t, "user", result.User.Role)
			assert.Equal(t, "Bearer", result.TokenType)
			assert.NotEmpty(t, result.AccessToken)
		})
	}
}

func TestLoginUseCase_Lockout(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	repo, updates := storeRepo(account)
	policy := user.SecurityPolicy{MaxLoginAttempts: 5, LockDuration: 2 * time.Hour}
	uc := NewLoginUseCase(repo, plainHasher{}, &mockTokenIssuer{}, policy, logger.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.Execute(ctx, LoginCommand{Email: "jane@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeInvalidCredentials, apperrors.GetAppError(err).Type, "attempt %d", i+1)
	}
	assert.Equal(t, 5, *updates, "every attempt persists the counter")

	_, err := uc.Execute(ctx, LoginCommand{Email: "jane@example.com", Password: "correct1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsAccountLockedError(err))
	assert.Equal(t, 6, account.LoginAttempts())
}

func TestLoginUseCase_Execute(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleAdmin)
	repo, _ := storeRepo(account)
	uc := NewLoginUseCase(repo, plainHasher{}, &mockTokenIssuer{}, user.SecurityPolicy{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), LoginCommand{Email: " JANE@example.com ", Password: "correct1"})
	require.NoError(t, err)
	assert.Equal(t, "access-"+account.ID(), result.AccessToken)
	assert.Equal(t, "admin", result.User.Role)
	assert.NotNil(t, account.LastLogin())

	_, err = uc.Execute(context.Background(), LoginCommand{Email: "ghost@example.com", Password: "correct1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInvalidCredentials, apperrors.GetAppError(err).Type)
}

func TestRefreshTokenUseCase_Execute(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	repo, _ := storeRepo(account)
	uc := NewRefreshTokenUseCase(repo, &mockTokenIssuer{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), "refresh-"+account.ID())
	require.NoError(t, err)
	assert.Equal(t, "access-"+account.ID(), result.AccessToken)

	_, err = uc.Execute(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeTokenInvalid, apperrors.GetAppError(err).Type)

	_, err = uc.Execute(context.Background(), "refresh-missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeTokenInvalid, apperrors.GetAppError(err).Type)

	account.Deactivate(time.Now())
	_, err = uc.Execute(context.Background(), "refresh-"+account.ID())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.GetAppError(err).Type)
}

func TestChangePasswordUseCase_Execute(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	repo, _ := storeRepo(account)
	uc := NewChangePasswordUseCase(repo, plainHasher{}, logger.NewNopLogger())
	ctx := context.Background()

	err := uc.Execute(ctx, ChangePasswordCommand{UserID: account.ID(), CurrentPassword: "nope", NewPassword: "newpass1"})
	assert.Equal(t, apperrors.ErrorTypeInvalidCredentials, apperrors.GetAppError(err).Type)

	err = uc.Execute(ctx, ChangePasswordCommand{UserID: account.ID(), CurrentPassword: "correct1", NewPassword: "short"})
	assert.True(t, apperrors.IsValidationError(err))

	require.NoError(t, uc.Execute(ctx, ChangePasswordCommand{UserID: account.ID(), CurrentPassword: "correct1", NewPassword: "newpass1"}))
	assert.True(t, account.VerifyPassword("newpass1", plainHasher{}))
}

func TestPasswordResetFlow(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	repo, _ := storeRepo(account)
	mailer := &mockResetMailer{}
	log := logger.NewNopLogger()
	codes := func() (string, error) { return "123456", nil }
	ctx := context.Background()

	// lock the account first
	policy := user.SecurityPolicy{MaxLoginAttempts: 2, LockDuration: time.Hour}
	login := NewLoginUseCase(repo, plainHasher{}, &mockTokenIssuer{}, policy, log)
	for i := 0; i < 2; i++ {
		_, _ = login.Execute(ctx, LoginCommand{Email: "jane@example.com", Password: "bad"})
	}
	require.True(t, account.IsLocked(time.Now()))

	request := NewRequestPasswordResetUseCase(repo, mailer, codes, 15*time.Minute, log)
	require.NoError(t, request.Execute(ctx, "jane@example.com"))
	require.NoError(t, request.Execute(ctx, "ghost@example.com"))
	assert.Equal(t, []string{"123456"}, mailer.codes)

	verify := NewVerifyResetCodeUseCase(repo, log)
	assert.True(t, apperrors.IsValidationError(verify.Execute(ctx, "jane@example.com", "000000")))
	require.NoError(t, verify.Execute(ctx, "jane@example.com", "123456"))

	reset := NewResetPasswordUseCase(repo, plainHasher{}, log)
	require.NoError(t, reset.Execute(ctx, ResetPasswordCommand{Email: "jane@example.com", Code: "123456", NewPassword: "brandnew9"}))
	assert.False(t, account.IsLocked(time.Now()))
	assert.Zero(t, account.LoginAttempts())

	_, err := login.Execute(ctx, LoginCommand{Email: "jane@example.com", Password: "brandnew9"})
	require.NoError(t, err)

	// the code is single use
	err = reset.Execute(ctx, ResetPasswordCommand{Email: "jane@example.com", Code: "123456", NewPassword: "another9"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestRequestPasswordReset_MailFailureIsFatal(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	repo, _ := storeRepo(account)
	mailer := &mockResetMailer{SendFunc: func(context.Context, string, string, string, int) error {
		return errors.New("smtp down")
	}}
	uc := NewRequestPasswordResetUseCase(repo, mailer, nil, 0, logger.NewNopLogger())

	err := uc.Execute(context.Background(), "jane@example.com")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnavailable, apperrors.GetAppError(err).Type)
	require.Len(t, mailer.codes, 1)
	assert.Regexp(t, `^\d{6}$`, mailer.codes[0])
}

func TestSixDigitCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := SixDigitCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
	}
}
