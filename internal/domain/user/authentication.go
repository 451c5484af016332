package user

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"remotcyberhelp/internal/shared/errors"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// SecurityPolicy configures the lockout counter.
type SecurityPolicy struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

func DefaultSecurityPolicy() SecurityPolicy {
	return SecurityPolicy{
		MaxLoginAttempts: 5,
		LockDuration:     2 * time.Hour,
	}
}

// Authenticate checks plain against the stored hash and updates the lockout
// state. The account must be persisted afterwards whatever the outcome.
//
// While locked every attempt, even with the right password, bumps the
// counter and fails with an account-locked error. An expired lock starts a
// fresh counter. A mismatch increments the counter and opens the lock
// window once MaxLoginAttempts is reached. A match resets the counter and
// stamps lastLogin.
func (a *Account) Authenticate(plain string, hasher PasswordHasher, policy SecurityPolicy, now time.Time) error {
	now = now.UTC()
	a.updatedAt = now

	if a.IsLocked(now) {
		a.loginAttempts++
		return errors.NewAccountLockedError("Account is temporarily locked due to too many failed login attempts",
			"locked until "+a.lockUntil.Format(time.RFC3339))
	}
	if a.lockUntil != nil {
		a.loginAttempts = 0
		a.lockUntil = nil
	}

	if !a.active {
		return errors.NewForbiddenError("Account is deactivated")
	}

	if a.passwordHash == "" || hasher.Verify(plain, a.passwordHash) != nil {
		a.loginAttempts++
		if a.loginAttempts >= policy.MaxLoginAttempts {
			until := now.Add(policy.LockDuration)
			a.lockUntil = &until
		}
		return errors.NewInvalidCredentialsError("Invalid email or password")
	}

	a.loginAttempts = 0
	a.lockUntil = nil
	a.lastLogin = &now
	return nil
}

// ChangePassword replaces the password hash.
func (a *Account) ChangePassword(newHash string, now time.Time) {
	a.passwordHash = newHash
	a.updatedAt = now.UTC()
}

// VerifyPassword checks plain without touching lockout state.
func (a *Account) VerifyPassword(plain string, hasher PasswordHasher) bool {
	return a.passwordHash != "" && hasher.Verify(plain, a.passwordHash) == nil
}

// IssueResetCode stores a hash of code valid for ttl.
func (a *Account) IssueResetCode(code string, ttl time.Duration, now time.Time) {
	expires := now.UTC().Add(ttl)
	a.resetCodeHash = hashCode(code)
	a.resetCodeExpiresAt = &expires
	a.updatedAt = now.UTC()
}

// VerifyResetCode fails when no code is pending, it expired, or it does not match.
func (a *Account) VerifyResetCode(code string, now time.Time) error {
	if a.resetCodeHash == "" || a.resetCodeExpiresAt == nil {
		return errors.NewValidationError("No password reset was requested")
	}
	if !now.Before(*a.resetCodeExpiresAt) {
		return errors.NewValidationError("Verification code has expired")
	}
	if subtle.ConstantTimeCompare([]byte(hashCode(code)), []byte(a.resetCodeHash)) != 1 {
		return errors.NewValidationError("Invalid verification code")
	}
	return nil
}

// ResetPassword consumes a valid reset code, sets the new hash and clears the lockout.
func (a *Account) ResetPassword(code, newHash string, now time.Time) error {
	if err := a.VerifyResetCode(code, now); err != nil {
		return err
	}
	a.passwordHash = newHash
	a.resetCodeHash = ""
	a.resetCodeExpiresAt = nil
	a.loginAttempts = 0
	a.lockUntil = nil
	a.updatedAt = now.UTC()
	return nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
