package user

import (
	"fmt"
	"strings"
	"time"

	vo "remotcyberhelp/internal/domain/user/valueobjects"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/id"
)

// Account is a login identity for customers and staff.
type Account struct {
	id                 string
	email              string
	name               string
	passwordHash       string
	role               authorization.UserRole
	active             bool
	loginAttempts      int
	lockUntil          *time.Time
	lastLogin          *time.Time
	resetCodeHash      string
	resetCodeExpiresAt *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func NewAccount(email *vo.Email, name, passwordHash string, role authorization.UserRole, now time.Time) (*Account, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	now = now.UTC()
	return &Account{
		id:           id.New(),
		email:        email.String(),
		name:         strings.TrimSpace(name),
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// AccountState is the persisted form of an Account.
type AccountState struct {
	ID                 string
	Email              string
	Name               string
	PasswordHash       string
	Role               string
	Active             bool
	LoginAttempts      int
	LockUntil          *time.Time
	LastLogin          *time.Time
	ResetCodeHash      string
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ReconstructAccount(s AccountState) (*Account, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("account ID is required")
	}
	if s.Email == "" {
		return nil, fmt.Errorf("account email is required")
	}
	return &Account{
		id:                 s.ID,
		email:              s.Email,
		name:               s.Name,
		passwordHash:       s.PasswordHash,
		role:               authorization.ParseUserRole(s.Role),
		active:             s.Active,
		loginAttempts:      s.LoginAttempts,
		lockUntil:          s.LockUntil,
		lastLogin:          s.LastLogin,
		resetCodeHash:      s.ResetCodeHash,
		resetCodeExpiresAt: s.ResetCodeExpiresAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}, nil
}

func (a *Account) State() AccountState {
	return AccountState{
		ID:                 a.id,
		Email:              a.email,
		Name:               a.name,
		PasswordHash:       a.passwordHash,
		Role:               a.role.String(),
		Active:             a.active,
		LoginAttempts:      a.loginAttempts,
		LockUntil:          a.lockUntil,
		LastLogin:          a.lastLogin,
		ResetCodeHash:      a.resetCodeHash,
		ResetCodeExpiresAt: a.resetCodeExpiresAt,
		CreatedAt:          a.createdAt,
		UpdatedAt:          a.updatedAt,
	}
}

func (a *Account) ID() string {
	return a.id
}

func (a *Account) Email() string {
	return a.email
}

func (a *Account) Name() string {
	return a.name
}

func (a *Account) Role() authorization.UserRole {
	return a.role
}

func (a *Account) IsActive() bool {
	return a.active
}

func (a *Account) LoginAttempts() int {
	return a.loginAttempts
}

func (a *Account) LockUntil() *time.Time {
	return a.lockUntil
}

func (a *Account) LastLogin() *time.Time {
	return a.lastLogin
}

func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Account) UpdatedAt() time.Time {
	return a.updatedAt
}

// IsLocked reports whether now falls inside the lockout window.
func (a *Account) IsLocked(now time.Time) bool {
	return a.lockUntil != nil && now.Before(*a.lockUntil)
}

func (a *Account) ChangeRole(role authorization.UserRole, now time.Time) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	a.role = role
	a.updatedAt = now.UTC()
	return nil
}

func (a *Account) UpdateProfile(name string, now time.Time) {
	a.name = strings.TrimSpace(name)
	a.updatedAt = now.UTC()
}

func (a *Account) Deactivate(now time.Time) {
	a.active = false
	a.updatedAt = now.UTC()
}

func (a *Account) Activate(now time.Time) {
	a.active = true
	a.updatedAt = now.UTC()
}

// Unlock clears the lockout counter and window.
func (a *Account) Unlock(now time.Time) {
	a.loginAttempts = 0
	a.lockUntil = nil
	a.updatedAt = now.UTC()
}
