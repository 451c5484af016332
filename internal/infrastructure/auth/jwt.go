package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

type Claims struct {
	UserID    string                 `json:"uid"`
	Email     string                 `json:"email"`
	Role      authorization.UserRole `json:"role"`
	TokenType TokenType              `json:"typ"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Subject identifies whom a token pair is issued for.
type Subject struct {
	UserID string
	Email  string
	Role   authorization.UserRole
}

type JWTService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTService(secret, issuer string, accessExpDays, refreshExpDays int) *JWTService {
	if accessExpDays <= 0 {
		accessExpDays = 7
	}
	if refreshExpDays <= 0 {
		refreshExpDays = 30
	}
	return &JWTService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  time.Duration(accessExpDays) * 24 * time.Hour,
		refreshTTL: time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

func (s *JWTService) Generate(sub Subject) (*TokenPair, error) {
	now := biztime.NowUTC()

	accessToken, err := s.sign(sub, TokenTypeAccess, now, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := s.sign(sub, TokenTypeRefresh, now, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// VerifyAccess rejects refresh tokens presented as bearer credentials.
func (s *JWTService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

// Refresh issues a new pair from a valid refresh token. Role and email are
// taken from the caller, which reloads the account so demotions apply.
func (s *JWTService) Refresh(refreshTokenString string, reload func(userID string) (Subject, error)) (*TokenPair, error) {
	claims, err := s.Verify(refreshTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, fmt.Errorf("token is not a refresh token")
	}

	sub, err := reload(claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.Generate(sub)
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) sign(sub Subject, typ TokenType, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    sub.UserID,
		Email:     sub.Email,
		Role:      sub.Role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sub.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
