package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/utils"
)

func aRegisterCommand() cqrs.RegisterUserCommand {
	return cqrs.RegisterUserCommand{
		Name:     "Alice Example",
		CPF:      "12345678901",
		Email:    "alice@example.com",
		Phone:    "555-0100",
		Login:    "alice",
		Password: "secret123",
		Role:     models.RoleCustomer,
	}
}

func TestRegisterUserHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := NewUserCommandService(store)

	user, err := svc.RegisterUser(context.Background(), aRegisterCommand())
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, utils.CheckPassword("secret123", user.PasswordHash))
	assert.Equal(t, models.RoleCustomer, user.Role)
}

func TestRegisterUserDuplicateLogin(t *testing.T) {
	store := newFakeStore()
	svc := NewUserCommandService(store)

	_, err := svc.RegisterUser(context.Background(), aRegisterCommand())
	require.NoError(t, err)

	duplicate := aRegisterCommand()
	duplicate.Email = "other@example.com"
	duplicate.CPF = "98765432109"
	_, err = svc.RegisterUser(context.Background(), duplicate)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestUpdateUser(t *testing.T) {
	store := newFakeStore()
	customer := seedCustomer(store, "alice")
	svc := NewUserCommandService(store)

	updated, err := svc.UpdateUser(context.Background(), cqrs.UpdateUserCommand{
		UserID:          customer.ID,
		RequestingLogin: "alice",
		Name:            "Alice Renamed",
		Email:           "renamed@example.com",
		Phone:           "555-0900",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.Name)
	assert.Equal(t, "alice", updated.Login, "login is immutable")
}

func TestDeleteUserHoldingAccount(t *testing.T) {
	store := newFakeStore()
	customer := seedCustomer(store, "alice")
	seedAccount(store, customer, 123456, "0", models.AccountChecking)
	svc := NewUserCommandService(store)

	err := svc.DeleteUser(context.Background(), cqrs.DeleteUserCommand{
		UserID:          customer.ID,
		RequestingLogin: "admin",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestDeleteUserWithoutAccount(t *testing.T) {
	store := newFakeStore()
	customer := seedCustomer(store, "alice")
	svc := NewUserCommandService(store)

	err := svc.DeleteUser(context.Background(), cqrs.DeleteUserCommand{
		UserID:          customer.ID,
		RequestingLogin: "admin",
	})
	require.NoError(t, err)

	_, err = store.userRepo.GetByID(context.Background(), customer.ID)
	assert.Error(t, err)
}
