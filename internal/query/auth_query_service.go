package query

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
	"github.com/mateus-ssouza/sevencc-bank/internal/utils"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretVal  []byte
)

func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("JWT_SECRET environment variable is not set")
		}
		jwtSecretVal = []byte(secret)
	})
	return jwtSecretVal
}

// AuthQueryService handles login and token refresh. There's no command
// service for auth because these operations don't mutate application state.
type AuthQueryService struct {
	users repository.UserRepository
}

func NewAuthQueryService(users repository.UserRepository) *AuthQueryService {
	return &AuthQueryService{users: users}
}

// ErrInvalidCredentials is returned for any login or refresh failure; the
// handler answers 401 without distinguishing unknown logins from bad passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Login verifies credentials and issues a signed token.
func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (string, error) {
	user, err := s.users.GetByLogin(ctx, cmd.Login)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.generateToken(user.Login, user.Role)
}

// RefreshToken re-issues a token for a still-valid bearer token.
func (s *AuthQueryService) RefreshToken(ctx context.Context, cmd cqrs.RefreshTokenCommand) (string, error) {
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(cmd.Token, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	return s.generateToken(claims.Login, claims.Role)
}

func (s *AuthQueryService) generateToken(login string, role models.UserRole) (string, error) {
	claims := middleware.Claims{
		Login: login,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", apperr.Wrap("failed to generate token", err)
	}
	return signed, nil
}
