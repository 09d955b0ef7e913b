package command

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/events"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
	"github.com/mateus-ssouza/sevencc-bank/internal/utils"
)

// Account numbers share a single range regardless of type; the type lives in
// its own column. Generation re-draws on collision and fails loudly once the
// attempt budget is spent rather than spinning on a crowded range.
const (
	accountNumberMin   = 100_000
	accountNumberMax   = 999_999
	maxNumberAttempts  = 25
	msgNumberExhausted = "could not allocate a free account number"
)

// AccountCommandService creates and deletes accounts and keeps the read
// model caches in step with those changes.
type AccountCommandService struct {
	store          Store
	accountViews   ViewInvalidator
	statementViews ViewInvalidator
	publisher      Publisher
}

func NewAccountCommandService(store Store, accountViews, statementViews ViewInvalidator, publisher Publisher) *AccountCommandService {
	return &AccountCommandService{
		store:          store,
		accountViews:   accountViews,
		statementViews: statementViews,
		publisher:      publisher,
	}
}

// CreateAccount binds a branch, an owner and a type into a new zero-balance
// account. A customer may hold at most one account.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	if !models.ValidAccountType(cmd.Type) {
		return nil, apperr.New(apperr.InvalidType, "invalid account type")
	}

	var account *models.Account
	var ownerLogin string
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		branch, err := r.Branches().GetByNumber(ctx, cmd.BranchNumber)
		if err != nil {
			return notFound(err, "branch not found")
		}

		customer, err := r.Users().GetByLogin(ctx, cmd.OwnerLogin)
		if err != nil {
			return notFound(err, "customer not found")
		}

		hasAccount, err := r.Accounts().ExistsByCustomerID(ctx, customer.ID)
		if err != nil {
			return err
		}
		if hasAccount {
			return apperr.New(apperr.Conflict, "customer already holds an account")
		}

		number, err := generateAccountNumber(ctx, r.Accounts())
		if err != nil {
			return err
		}

		account = &models.Account{
			Number:     number,
			Balance:    decimal.Zero,
			Type:       cmd.Type,
			BranchID:   branch.ID,
			CustomerID: customer.ID,
		}
		ownerLogin = customer.Login
		return r.Accounts().Create(ctx, account)
	})
	if err != nil {
		return nil, classify(err, "failed to create account")
	}

	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:     account.ID,
		AccountNumber: account.Number,
		OwnerLogin:    ownerLogin,
		AccountType:   string(account.Type),
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return account, nil
}

// DeleteAccount removes an account. Deletion is only permitted while the
// balance is exactly zero.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	var number int64
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		account, err := r.Accounts().GetByID(ctx, cmd.AccountID)
		if err != nil {
			return notFound(err, "account not found")
		}
		if !account.Balance.IsZero() {
			return apperr.New(apperr.Conflict, "account balance must be zero")
		}
		number = account.Number
		return r.Accounts().Delete(ctx, account.ID)
	})
	if err != nil {
		return classify(err, "failed to delete account")
	}

	s.accountViews.Invalidate(ctx, cmd.AccountID)
	s.statementViews.Invalidate(ctx, cmd.AccountID)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID:     cmd.AccountID,
		AccountNumber: number,
	}); err != nil {
		log.Printf("Failed to publish account.deleted event: %v", err)
	}
	return nil
}

func generateAccountNumber(ctx context.Context, accounts repository.AccountRepository) (int64, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := utils.RandomInRange(accountNumberMin, accountNumberMax)
		exists, err := accounts.ExistsByNumber(ctx, number)
		if err != nil {
			return 0, err
		}
		if !exists {
			return number, nil
		}
	}
	return 0, apperr.New(apperr.Repository, msgNumberExhausted)
}
