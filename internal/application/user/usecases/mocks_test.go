package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/infrastructure/auth"
	apperrors "remotcyberhelp/internal/shared/errors"
)

type mockUserRepository struct {
	CreateFunc                 func(ctx context.Context, a *user.Account) error
	UpdateFunc                 func(ctx context.Context, a *user.Account) error
	GetByIDFunc                func(ctx context.Context, id string) (*user.Account, error)
	GetByEmailFunc             func(ctx context.Context, email string) (*user.Account, error)
	ExistsByEmailFunc          func(ctx context.Context, email string) (bool, error)
	ListFunc                   func(ctx context.Context, filter user.ListFilter) ([]*user.Account, int64, error)
	ListAdminEmailsFunc        func(ctx context.Context) ([]string, error)
	ClearExpiredResetCodesFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, a *user.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, a *user.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.Account, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	if m.ListAdminEmailsFunc != nil {
		return m.ListAdminEmailsFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	if m.ClearExpiredResetCodesFunc != nil {
		return m.ClearExpiredResetCodesFunc(ctx, now)
	}
	return 0, nil
}

// storeRepo backs the mock with a map so use cases see their own writes.
func storeRepo(accounts ...*user.Account) (*mockUserRepository, *int) {
	var mu sync.Mutex
	byID := map[string]*user.Account{}
	for _, a := range accounts {
		byID[a.ID()] = a
	}
	updates := 0
	return &mockUserRepository{
		CreateFunc: func(_ context.Context, a *user.Account) error {
			mu.Lock()
			defer mu.Unlock()
			byID[a.ID()] = a
			return nil
		},
		UpdateFunc: func(_ context.Context, a *user.Account) error {
			mu.Lock()
			defer mu.Unlock()
			updates++
			byID[a.ID()] = a
			return nil
		},
		GetByIDFunc: func(_ context.Context, id string) (*user.Account, error) {
			mu.Lock()
			defer mu.Unlock()
			if a, ok := byID[id]; ok {
				return a, nil
			}
			return nil, apperrors.NewNotFoundError("user not found")
		},
		GetByEmailFunc: func(_ context.Context, email string) (*user.Account, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, a := range byID {
				if a.Email() == email {
					return a, nil
				}
			}
			return nil, apperrors.NewNotFoundError("user not found")
		},
		ExistsByEmailFunc: func(_ context.Context, email string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, a := range byID {
				if a.Email() == email {
					return true, nil
				}
			}
			return false, nil
		},
	}, &updates
}

// plainHasher stores "hashed:<password>" so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	GenerateFunc func(sub auth.Subject) (*auth.TokenPair, error)
	RefreshFunc  func(token string, reload func(string) (auth.Subject, error)) (*auth.TokenPair, error)
}

func (m *mockTokenIssuer) Generate(sub auth.Subject) (*auth.TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(sub)
	}
	return &auth.TokenPair{AccessToken: "access-" + sub.UserID, RefreshToken: "refresh-" + sub.UserID, ExpiresIn: 3600}, nil
}

func (m *mockTokenIssuer) Refresh(token string, reload func(string) (auth.Subject, error)) (*auth.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(token, reload)
	}
	userID, ok := strings.CutPrefix(token, "refresh-")
	if !ok {
		return nil, fmt.Errorf("invalid refresh token")
	}
	sub, err := reload(userID)
	if err != nil {
		return nil, err
	}
	return m.Generate(sub)
}

type mockResetMailer struct {
	SendFunc func(ctx context.Context, to, name, code string, minutes int) error
	codes    []string
}

func (m *mockResetMailer) SendPasswordResetCode(ctx context.Context, to, name, code string, minutes int) error {
	m.codes = append(m.codes, code)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, name, code, minutes)
	}
	return nil
}
