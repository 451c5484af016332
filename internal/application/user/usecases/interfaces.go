package usecases

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/infrastructure/auth"
)

// TokenIssuer signs access and refresh tokens.
type TokenIssuer interface {
	Generate(sub auth.Subject) (*auth.TokenPair, error)
	Refresh(refreshToken string, reload func(userID string) (auth.Subject, error)) (*auth.TokenPair, error)
}

type ResetCodeMailer interface {
	SendPasswordResetCode(ctx context.Context, to, name, code string, minutes int) error
}

// CodeGenerator returns a fresh numeric verification code.
type CodeGenerator func() (string, error)

// SixDigitCode draws a uniformly random code in 000000-999999.
func SixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func subjectOf(a *user.Account) auth.Subject {
	return auth.Subject{UserID: a.ID(), Email: a.Email(), Role: a.Role()}
}

func issueTokens(tokens TokenIssuer, a *user.Account) (*dto.AuthResultDTO, error) {
	pair, err := tokens.Generate(subjectOf(a))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &dto.AuthResultDTO{
		User:         dto.ToAccountDTO(a),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
