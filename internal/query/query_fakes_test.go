package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

type stubUsers struct {
	byLogin map[string]*models.User
}

func (s *stubUsers) GetByLogin(_ context.Context, login string) (*models.User, error) {
	user, ok := s.byLogin[login]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUsers) Create(context.Context, *models.User) error { return nil }
func (s *stubUsers) GetByID(context.Context, int64) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUsers) ExistsByLoginEmailOrCPF(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (s *stubUsers) List(context.Context, models.UserRole) ([]models.User, error) { return nil, nil }
func (s *stubUsers) Update(context.Context, *models.User) error                   { return nil }
func (s *stubUsers) Delete(context.Context, int64) error                          { return nil }

type stubAccounts struct {
	byCustomerID map[int64]*models.Account
}

func (s *stubAccounts) GetByCustomerID(_ context.Context, customerID int64) (*models.Account, error) {
	account, ok := s.byCustomerID[customerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return account, nil
}

func (s *stubAccounts) GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*models.Account, error) {
	return s.GetByCustomerID(ctx, customerID)
}

func (s *stubAccounts) Create(context.Context, *models.Account) error { return nil }
func (s *stubAccounts) GetByID(context.Context, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}
func (s *stubAccounts) GetByNumberForUpdate(context.Context, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}
func (s *stubAccounts) ExistsByNumber(context.Context, int64) (bool, error)     { return false, nil }
func (s *stubAccounts) ExistsByCustomerID(context.Context, int64) (bool, error) { return false, nil }
func (s *stubAccounts) ExistsByBranchID(context.Context, int64) (bool, error)   { return false, nil }
func (s *stubAccounts) List(context.Context, models.AccountType) ([]models.Account, error) {
	return nil, nil
}
func (s *stubAccounts) UpdateBalance(context.Context, int64, decimal.Decimal) error { return nil }
func (s *stubAccounts) Delete(context.Context, int64) error                         { return nil }

type fakeStatements struct {
	byAccountID map[int64][]models.TransactionView
	invalidated []int64
}

func (f *fakeStatements) ListByAccountID(_ context.Context, accountID int64) ([]models.TransactionView, error) {
	return f.byAccountID[accountID], nil
}

func (f *fakeStatements) Invalidate(_ context.Context, accountID int64) {
	f.invalidated = append(f.invalidated, accountID)
}

type fakeAccountViews struct {
	invalidated []int64
}

func (f *fakeAccountViews) Invalidate(_ context.Context, accountID int64) {
	f.invalidated = append(f.invalidated, accountID)
}
