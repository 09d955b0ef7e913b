package query

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/utils"
)

func authFixture(t *testing.T) *AuthQueryService {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := &stubUsers{byLogin: map[string]*models.User{
		"alice": {ID: 7, Login: "alice", PasswordHash: hash, Role: models.RoleCustomer},
	}}
	return NewAuthQueryService(users)
}

func parseClaims(t *testing.T, token string) *middleware.Claims {
	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestLogin(t *testing.T) {
	svc := authFixture(t)

	token, err := svc.Login(context.Background(), cqrs.LoginCommand{Login: "alice", Password: "secret123"})
	require.NoError(t, err)

	claims := parseClaims(t, token)
	assert.Equal(t, "alice", claims.Login)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := authFixture(t)

	_, err := svc.Login(context.Background(), cqrs.LoginCommand{Login: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := authFixture(t)

	_, err := svc.Login(context.Background(), cqrs.LoginCommand{Login: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc := authFixture(t)

	token, err := svc.Login(context.Background(), cqrs.LoginCommand{Login: "alice", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), cqrs.RefreshTokenCommand{Token: token})
	require.NoError(t, err)

	claims := parseClaims(t, refreshed)
	assert.Equal(t, "alice", claims.Login)
}

func TestRefreshTokenGarbage(t *testing.T) {
	svc := authFixture(t)

	_, err := svc.RefreshToken(context.Background(), cqrs.RefreshTokenCommand{Token: "not.a.token"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
