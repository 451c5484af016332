package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"remotcyberhelp/internal/shared/authorization"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Str0ngPass!")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ngPass!", hash)

	assert.NoError(t, h.Verify("Str0ngPass!", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("Str0ngPass!", "not-a-hash"))
}

func TestBcryptPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptPasswordHasher(99)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "remotcyberhelp", 7, 30)
	sub := Subject{UserID: "u1", Email: "jane@example.com", Role: authorization.RoleAdmin}

	pair, err := svc.Generate(sub)
	require.NoError(t, err)
	assert.Equal(t, int64(7*24*3600), pair.ExpiresIn)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err, "refresh tokens are not bearer credentials")
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("test-secret", "remotcyberhelp", 7, 30)

	other := NewJWTService("other-secret", "remotcyberhelp", 7, 30)
	pair, err := other.Generate(Subject{UserID: "u1", Role: authorization.RoleUser})
	require.NoError(t, err)
	_, err = svc.Verify(pair.AccessToken)
	assert.Error(t, err)

	wrongIssuer := NewJWTService("test-secret", "someone-else", 7, 30)
	pair, err = wrongIssuer.Generate(Subject{UserID: "u1", Role: authorization.RoleUser})
	require.NoError(t, err)
	_, err = svc.Verify(pair.AccessToken)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.Error(t, err)
}

func TestJWTService_Refresh(t *testing.T) {
	svc := NewJWTService("test-secret", "", 7, 30)
	pair, err := svc.Generate(Subject{UserID: "u1", Email: "a@b.co", Role: authorization.RoleAdmin})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(pair.RefreshToken, func(userID string) (Subject, error) {
		assert.Equal(t, "u1", userID)
		return Subject{UserID: userID, Email: "a@b.co", Role: authorization.RoleUser}, nil
	})
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleUser, claims.Role, "role is reloaded on refresh")

	_, err = svc.Refresh(pair.AccessToken, nil)
	assert.Error(t, err)

	_, err = svc.Refresh(pair.RefreshToken, func(string) (Subject, error) {
		return Subject{}, errors.New("account gone")
	})
	assert.EqualError(t, err, "account gone")
}
