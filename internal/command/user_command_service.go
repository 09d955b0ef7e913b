package command

import (
	"context"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
	"github.com/mateus-ssouza/sevencc-bank/internal/utils"
)

// UserCommandService manages customer and administrator records.
type UserCommandService struct {
	store Store
}

func NewUserCommandService(store Store) *UserCommandService {
	return &UserCommandService{store: store}
}

// RegisterUser creates a customer or admin with a bcrypt-hashed password.
// Login, email and CPF must all be unused.
func (s *UserCommandService) RegisterUser(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, apperr.Wrap("failed to hash password", err)
	}

	var user *models.User
	err = s.store.InTx(ctx, func(r repository.Repos) error {
		taken, err := r.Users().ExistsByLoginEmailOrCPF(ctx, cmd.Login, cmd.Email, cmd.CPF)
		if err != nil {
			return err
		}
		if taken {
			return apperr.New(apperr.Conflict, "login, email or cpf already registered")
		}

		user = &models.User{
			Name:         cmd.Name,
			CPF:          cmd.CPF,
			Email:        cmd.Email,
			Phone:        cmd.Phone,
			Login:        cmd.Login,
			PasswordHash: hash,
			Role:         cmd.Role,
		}
		return r.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, classify(err, "failed to register user")
	}
	return user, nil
}

// UpdateUser changes contact data. Customers may only update themselves;
// the handler enforces the admin override.
func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	var user *models.User
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		existing, err := r.Users().GetByID(ctx, cmd.UserID)
		if err != nil {
			return notFound(err, "user not found")
		}

		existing.Name = cmd.Name
		existing.Email = cmd.Email
		existing.Phone = cmd.Phone
		if err := r.Users().Update(ctx, existing); err != nil {
			return err
		}
		user = existing
		return nil
	})
	if err != nil {
		return nil, classify(err, "failed to update user")
	}
	return user, nil
}

// DeleteUser removes a user. A customer still holding an account cannot be
// deleted; the account must be closed first.
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		user, err := r.Users().GetByID(ctx, cmd.UserID)
		if err != nil {
			return notFound(err, "user not found")
		}

		hasAccount, err := r.Accounts().ExistsByCustomerID(ctx, user.ID)
		if err != nil {
			return err
		}
		if hasAccount {
			return apperr.New(apperr.Conflict, "customer still holds an account")
		}
		return r.Users().Delete(ctx, user.ID)
	})
	if err != nil {
		return classify(err, "failed to delete user")
	}
	return nil
}
