// Package auth checks dashboard credentials and issues signed session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

var (
	// ErrInvalidCredentials indicates the username/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a session token failed verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// UserFinder looks up an account by its credentials.
type UserFinder interface {
	FindByCredentials(ctx context.Context, username, password string) (models.User, error)
}

// Claims is the payload of a session token.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates users against the users table.
type Service struct {
	users  UserFinder
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the auth service with the HMAC secret and token lifetime.
func NewService(users UserFinder, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login verifies the credentials and returns the account with a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (models.User, string, error) {
	if username == "" || password == "" {
		return models.User{}, "", ErrInvalidCredentials
	}

	user, err := s.users.FindByCredentials(ctx, username, password)
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Info("login rejected", zap.String("username", username))
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	user.Role = user.EffectiveRole()

	token, err := s.Issue(user)
	if err != nil {
		return models.User{}, "", err
	}

	s.logger.Info("login succeeded", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return user, token, nil
}

// Issue signs a session token for user.
func (s *Service) Issue(user models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Username: user.Username,
		Role:     user.EffectiveRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a session token and returns its claims.
func (s *Service) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
