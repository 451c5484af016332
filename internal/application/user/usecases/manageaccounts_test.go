package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/authorization"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

func TestChangeRoleUseCase_Execute(t *testing.T) {
	target := newAccount(t, "staff@example.com", "secret123", authorization.RoleUser)
	repo, _ := storeRepo(target)
	uc := NewChangeRoleUseCase(repo, logger.NewNopLogger())
	ctx := context.Background()

	tests := []struct {
		name    string
		cmd     ChangeRoleCommand
		wantErr apperrors.ErrorType
	}{
		{
			name:    "admin cannot change roles",
			cmd:     ChangeRoleCommand{UserID: target.ID(), Role: "admin", ActorID: "a1", ActorRole: authorization.RoleAdmin},
			wantErr: apperrors.ErrorTypeForbidden,
		},
		{
			name:    "unknown role",
			cmd:     ChangeRoleCommand{UserID: target.ID(), Role: "owner", ActorID: "s1", ActorRole: authorization.RoleSuperAdmin},
			wantErr: apperrors.ErrorTypeValidation,
		},
		{
			name:    "self demotion",
			cmd:     ChangeRoleCommand{UserID: "s1", Role: "user", ActorID: "s1", ActorRole: authorization.RoleSuperAdmin},
			wantErr: apperrors.ErrorTypeValidation,
		},
		{
			name: "super admin promotes",
			cmd:  ChangeRoleCommand{UserID: target.ID(), Role: "admin", ActorID: "s1", ActorRole: authorization.RoleSuperAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(ctx, tt.cmd)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, apperrors.GetAppError(err).Type)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", result.Role)
			assert.Equal(t, authorization.RoleAdmin, target.Role())
		})
	}
}

func TestUnlockAccountUseCase_Execute(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	for i := 0; i < 5; i++ {
		_ = account.Authenticate("bad", plainHasher{}, user.DefaultSecurityPolicy(), time.Now())
	}
	require.True(t, account.IsLocked(time.Now()))

	repo, _ := storeRepo(account)
	result, err := NewUnlockAccountUseCase(repo, logger.NewNopLogger()).Execute(context.Background(), account.ID(), "admin-1")
	require.NoError(t, err)
	assert.False(t, account.IsLocked(time.Now()))
	require.NotNil(t, result.LoginAttempts)
	assert.Zero(t, *result.LoginAttempts)
}

func TestSetAccountActiveUseCase_Execute(t *testing.T) {
	account := newAccount(t, "jane@example.com", "correct1", authorization.RoleUser)
	repo, _ := storeRepo(account)
	uc := NewSetAccountActiveUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), "admin-1", false, "admin-1")
	assert.True(t, apperrors.IsValidationError(err))

	result, err := uc.Execute(context.Background(), account.ID(), false, "admin-1")
	require.NoError(t, err)
	assert.False(t, result.IsActive)
}

func TestListAccountsUseCase_Execute(t *testing.T) {
	var captured user.ListFilter
	repo := &mockUserRepository{
		ListFunc: func(_ context.Context, f user.ListFilter) ([]*user.Account, int64, error) {
			captured = f
			return []*user.Account{newAccount(t, "a@example.com", "secret123", authorization.RoleAdmin)}, 1, nil
		},
	}
	uc := NewListAccountsUseCase(repo, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListAccountsQuery{Role: "admin", Search: "a@", PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, "admin", captured.Role)
	assert.Equal(t, 100, result.Limit)
	assert.Len(t, result.Accounts, 1)

	_, err = uc.Execute(context.Background(), ListAccountsQuery{Role: "root"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCleanupResetCodesUseCase_Execute(t *testing.T) {
	repo := &mockUserRepository{
		ClearExpiredResetCodesFunc: func(context.Context, time.Time) (int64, error) { return 3, nil },
	}
	n, err := NewCleanupResetCodesUseCase(repo, logger.NewNopLogger()).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
