package query

import (
	"context"
	"errors"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

type UserQueryService struct {
	users repository.UserRepository
}

func NewUserQueryService(users repository.UserRepository) *UserQueryService {
	return &UserQueryService{users: users}
}

// GetUser fetches a user record. Customers can only read themselves; admins
// can read anyone.
func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	user, err := s.users.GetByID(ctx, q.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap("failed to get user", err)
	}
	if q.RequestingRole != models.RoleAdmin && user.Login != q.RequestingLogin {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return user, nil
}

// ListCustomers returns all registered customers (back-office view).
func (s *UserQueryService) ListCustomers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx, models.RoleCustomer)
	if err != nil {
		return nil, apperr.Wrap("failed to list customers", err)
	}
	return users, nil
}
