package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

const quizTokenType = "quiz"

// TokenService issues and validates HMAC-signed quiz tokens. A token's
// subject is the pending-quiz key it grants access to.
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
	clockSkew  time.Duration
}

type quizClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// NewTokenService creates a TokenService. The secret must be at least 32 bytes.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}
	return &TokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
		clockSkew:  30 * time.Second,
	}, nil
}

// WithTimeFunc returns a copy of s that reads the current time from now.
func (s *TokenService) WithTimeFunc(now func() time.Time) *TokenService {
	c := *s
	c.timeFunc = now
	return &c
}

// NewKey returns a fresh random pending-quiz key.
func NewKey() string {
	return uuid.NewString()
}

// Issue signs a token for key.
func (s *TokenService) Issue(ctx context.Context, key string) (string, error) {
	now := s.timeFunc()
	claims := quizClaims{
		TokenType: quizTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   key,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "failed to sign quiz token", "error", err)
		return "", fmt.Errorf("failed to sign quiz token: %w", err)
	}
	return signed, nil
}

// Validate checks the token and returns the pending-quiz key it carries.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (string, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return "", ErrMissingToken
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&quizClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.DebugContext(ctx, "quiz token expired", "error", err)
			return "", ErrExpiredToken
		}
		log.DebugContext(ctx, "quiz token rejected", "error", err)
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*quizClaims)
	if !ok || !token.Valid || claims.TokenType != quizTokenType || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
