package settlement

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateus-ssouza/sevencc-bank/internal/events"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

type fakeAccounts struct {
	byID map[int64]*models.Account
}

func newFakeAccounts(accounts ...*models.Account) *fakeAccounts {
	f := &fakeAccounts{byID: map[int64]*models.Account{}}
	for _, account := range accounts {
		f.byID[account.ID] = account
	}
	return f
}

func (f *fakeAccounts) List(_ context.Context, typeFilter models.AccountType) ([]models.Account, error) {
	var out []models.Account
	for _, account := range f.byID {
		if typeFilter == "" || account.Type == typeFilter {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (f *fakeAccounts) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	account, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.Balance = balance
	return nil
}

// The remaining AccountRepository methods are unused by the settlement job.
func (f *fakeAccounts) Create(context.Context, *models.Account) error { return nil }
func (f *fakeAccounts) GetByID(context.Context, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeAccounts) GetByCustomerIDForUpdate(context.Context, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeAccounts) GetByCustomerID(context.Context, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeAccounts) GetByNumberForUpdate(context.Context, int64) (*models.Account, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeAccounts) ExistsByNumber(context.Context, int64) (bool, error)     { return false, nil }
func (f *fakeAccounts) ExistsByCustomerID(context.Context, int64) (bool, error) { return false, nil }
func (f *fakeAccounts) ExistsByBranchID(context.Context, int64) (bool, error)   { return false, nil }
func (f *fakeAccounts) Delete(context.Context, int64) error                     { return nil }

type fakeInvalidator struct {
	invalidated []int64
}

func (v *fakeInvalidator) Invalidate(_ context.Context, accountID int64) {
	v.invalidated = append(v.invalidated, accountID)
}

type fakePublisher struct {
	events   []string
	payloads []any
}

func (p *fakePublisher) Publish(_ context.Context, _, eventType string, data any) error {
	p.events = append(p.events, eventType)
	p.payloads = append(p.payloads, data)
	return nil
}

func account(id int64, accountType models.AccountType, balance string) *models.Account {
	return &models.Account{
		ID:      id,
		Number:  100000 + id,
		Type:    accountType,
		Balance: decimal.RequireFromString(balance),
	}
}

func TestApplyMonthlyInterest(t *testing.T) {
	accounts := newFakeAccounts(
		account(1, models.AccountSavings, "1000.00"),
		account(2, models.AccountSavings, "0"),
		account(3, models.AccountSavings, "-50.00"),
		account(4, models.AccountChecking, "1000.00"),
	)
	views := &fakeInvalidator{}
	publisher := &fakePublisher{}
	svc := NewService(accounts, views, publisher)

	require.NoError(t, svc.ApplyMonthlyInterest(context.Background()))

	assert.True(t, accounts.byID[1].Balance.Equal(decimal.RequireFromString("1005.00")),
		"got %s", accounts.byID[1].Balance)
	assert.True(t, accounts.byID[2].Balance.IsZero(), "zero balance accrues nothing")
	assert.True(t, accounts.byID[3].Balance.Equal(decimal.RequireFromString("-50.00")),
		"negative balance accrues nothing")
	assert.True(t, accounts.byID[4].Balance.Equal(decimal.RequireFromString("1000.00")),
		"checking accounts earn no interest")

	assert.Equal(t, []int64{1}, views.invalidated)
	assert.Equal(t, []string{events.InterestApplied}, publisher.events)
}

func TestApplyMonthlyInterestRoundsToCents(t *testing.T) {
	accounts := newFakeAccounts(account(1, models.AccountSavings, "1000.01"))
	publisher := &fakePublisher{}
	svc := NewService(accounts, &fakeInvalidator{}, publisher)

	require.NoError(t, svc.ApplyMonthlyInterest(context.Background()))

	stored := accounts.byID[1].Balance
	assert.True(t, stored.Equal(decimal.RequireFromString("1005.01")), "got %s", stored)
	assert.GreaterOrEqual(t, stored.Exponent(), int32(-2), "balance carries more than two decimals")

	require.Len(t, publisher.payloads, 1)
	event, ok := publisher.payloads[0].(events.SettlementAppliedEvent)
	require.True(t, ok)
	assert.Equal(t, stored.String(), event.NewBalance, "published balance must match the stored one")
	assert.True(t, decimal.RequireFromString(event.Change).Equal(decimal.RequireFromString("5.00")))
}

func TestApplyMonthlyFee(t *testing.T) {
	accounts := newFakeAccounts(
		account(1, models.AccountChecking, "100.00"),
		account(2, models.AccountChecking, "10.00"),
		account(3, models.AccountSavings, "100.00"),
	)
	views := &fakeInvalidator{}
	publisher := &fakePublisher{}
	svc := NewService(accounts, views, publisher)

	require.NoError(t, svc.ApplyMonthlyFee(context.Background()))

	assert.True(t, accounts.byID[1].Balance.Equal(decimal.RequireFromString("80.00")),
		"got %s", accounts.byID[1].Balance)
	assert.True(t, accounts.byID[2].Balance.Equal(decimal.RequireFromString("-10.00")),
		"fee may drive the balance negative, got %s", accounts.byID[2].Balance)
	assert.True(t, accounts.byID[3].Balance.Equal(decimal.RequireFromString("100.00")),
		"savings accounts pay no fee")

	assert.Len(t, publisher.events, 2)
	for _, eventType := range publisher.events {
		assert.Equal(t, events.FeeApplied, eventType)
	}
}

func TestRunAppliesBothPasses(t *testing.T) {
	accounts := newFakeAccounts(
		account(1, models.AccountSavings, "200.00"),
		account(2, models.AccountChecking, "200.00"),
	)
	svc := NewService(accounts, &fakeInvalidator{}, &fakePublisher{})

	svc.Run(context.Background())

	assert.True(t, accounts.byID[1].Balance.Equal(decimal.RequireFromString("201.00")))
	assert.True(t, accounts.byID[2].Balance.Equal(decimal.RequireFromString("180.00")))
}
