package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("JWT_SECRET is not set")
)

type CustomClaims struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (m *TokenManager) GeneratePair(userID uint, email, role string) (*TokenPair, error) {
	access, err := m.generate(userID, email, role, AccessToken, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.generate(userID, email, role, RefreshToken, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// GenerateAccess issues a fresh access token for the subject of claims.
func (m *TokenManager) GenerateAccess(claims *CustomClaims) (string, error) {
	return m.generate(claims.UserID, claims.Email, claims.Role, AccessToken, m.accessTTL)
}

func (m *TokenManager) generate(userID uint, email, role string, typ TokenType, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := CustomClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies tokenStr and checks that it is of the expected type.
func (m *TokenManager) Parse(tokenStr string, expected TokenType) (*CustomClaims, error) {
	if len(m.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.TokenType != expected {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
