package dto

import (
	"time"

	"remotcyberhelp/internal/domain/user"
)

// AccountDTO is the public view of an account. Lockout fields are only
// filled for admin listings.
type AccountDTO struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	LoginAttempts *int       `json:"loginAttempts,omitempty"`
	LockUntil     *time.Time `json:"lockUntil,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type AuthResultDTO struct {
	User         *AccountDTO `json:"user,omitempty"`
	AccessToken  string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int64       `json:"expiresIn"`
}

func ToAccountDTO(a *user.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:        a.ID(),
		Email:     a.Email(),
		Name:      a.Name(),
		Role:      a.Role().String(),
		IsActive:  a.IsActive(),
		LastLogin: a.LastLogin(),
		CreatedAt: a.CreatedAt(),
	}
}

// ToAdminAccountDTO adds the lockout state.
func ToAdminAccountDTO(a *user.Account) *AccountDTO {
	d := ToAccountDTO(a)
	if d == nil {
		return nil
	}
	attempts := a.LoginAttempts()
	d.LoginAttempts = &attempts
	d.LockUntil = a.LockUntil()
	return d
}

func ToAdminAccountDTOs(accounts []*user.Account) []*AccountDTO {
	out := make([]*AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAdminAccountDTO(a))
	}
	return out
}
