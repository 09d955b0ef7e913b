// Package query holds the read-side services. They serve projections from
// the Redis-backed read repositories and never mutate balances.
package query

import (
	"context"
	"errors"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

// AccountViews is the read-model source for account projections.
// *repository.AccountReadRepository satisfies it.
type AccountViews interface {
	GetByID(ctx context.Context, id int64) (*models.AccountView, error)
	GetByOwnerLogin(ctx context.Context, login string) (*models.AccountView, error)
	List(ctx context.Context, typeFilter models.AccountType) ([]models.AccountView, error)
}

type AccountQueryService struct {
	views AccountViews
}

func NewAccountQueryService(views AccountViews) *AccountQueryService {
	return &AccountQueryService{views: views}
}

// GetOwnAccount fetches the account bound to the authenticated customer.
func (s *AccountQueryService) GetOwnAccount(ctx context.Context, q cqrs.GetOwnAccountQuery) (*models.AccountView, error) {
	view, err := s.views.GetByOwnerLogin(ctx, q.OwnerLogin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "account not found")
		}
		return nil, apperr.Wrap("failed to get account", err)
	}
	return view, nil
}

// GetAccount fetches any account by internal id (back-office view).
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	view, err := s.views.GetByID(ctx, q.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "account not found")
		}
		return nil, apperr.Wrap("failed to get account", err)
	}
	return view, nil
}

// ListAccounts returns all accounts, optionally filtered by type.
func (s *AccountQueryService) ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	if q.Type != "" && !models.ValidAccountType(q.Type) {
		return nil, apperr.New(apperr.InvalidType, "invalid account type")
	}
	views, err := s.views.List(ctx, q.Type)
	if err != nil {
		return nil, apperr.Wrap("failed to list accounts", err)
	}
	return views, nil
}
