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
)

// TransactionCommandService is the transaction engine: deposit, withdrawal
// and transfer. Each operation resolves the caller's account, applies the
// business rule, mutates balances and records the transaction inside one
// unit of work; the row locks taken on resolution serialise concurrent
// operations against the same account.
type TransactionCommandService struct {
	store          Store
	accountViews   ViewInvalidator
	statementViews ViewInvalidator
	publisher      Publisher
}

func NewTransactionCommandService(store Store, accountViews, statementViews ViewInvalidator, publisher Publisher) *TransactionCommandService {
	return &TransactionCommandService{
		store:          store,
		accountViews:   accountViews,
		statementViews: statementViews,
		publisher:      publisher,
	}
}

// Deposit credits the caller's account.
func (s *TransactionCommandService) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.TransactionView, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}

	var transaction *models.Transaction
	var sourceNumber int64
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		account, err := resolveOwnerAccount(ctx, r, cmd.OwnerLogin)
		if err != nil {
			return err
		}

		if err := r.Accounts().UpdateBalance(ctx, account.ID, account.Balance.Add(cmd.Amount)); err != nil {
			return err
		}

		transaction = &models.Transaction{
			Amount:          cmd.Amount,
			Type:            models.TransactionDeposit,
			SourceAccountID: account.ID,
		}
		sourceNumber = account.Number
		return r.Transactions().Create(ctx, transaction)
	})
	if err != nil {
		return nil, classify(err, "failed to register deposit")
	}

	s.finish(ctx, transaction)
	return toView(transaction, sourceNumber, nil), nil
}

// Withdraw debits the caller's account, rejecting overdrafts.
func (s *TransactionCommandService) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.TransactionView, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}

	var transaction *models.Transaction
	var sourceNumber int64
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		account, err := resolveOwnerAccount(ctx, r, cmd.OwnerLogin)
		if err != nil {
			return err
		}

		if account.Balance.LessThan(cmd.Amount) {
			return apperr.New(apperr.InsufficientBalance, "insufficient balance")
		}

		if err := r.Accounts().UpdateBalance(ctx, account.ID, account.Balance.Sub(cmd.Amount)); err != nil {
			return err
		}

		transaction = &models.Transaction{
			Amount:          cmd.Amount,
			Type:            models.TransactionWithdrawal,
			SourceAccountID: account.ID,
		}
		sourceNumber = account.Number
		return r.Transactions().Create(ctx, transaction)
	})
	if err != nil {
		return nil, classify(err, "failed to register withdrawal")
	}

	s.finish(ctx, transaction)
	return toView(transaction, sourceNumber, nil), nil
}

// Transfer moves funds from the caller's account to the account holding the
// given public number. Both balance writes and the transaction record share
// one unit of work, so a failure at any step leaves no partial movement.
func (s *TransactionCommandService) Transfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.TransactionView, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}

	var transaction *models.Transaction
	var sourceNumber, destinationNumber int64
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		customer, err := r.Users().GetByLogin(ctx, cmd.OwnerLogin)
		if err != nil {
			return notFound(err, "customer not found")
		}

		owned, err := r.Accounts().GetByCustomerID(ctx, customer.ID)
		if err != nil {
			return notFound(err, "source account not found")
		}

		// Compare the public numbers, not identities.
		if owned.Number == cmd.DestinationNumber {
			return apperr.New(apperr.Conflict, "source and destination accounts must differ")
		}

		source, destination, err := lockTransferPair(ctx, r, owned.Number, cmd.DestinationNumber)
		if err != nil {
			return err
		}

		if source.Balance.LessThan(cmd.Amount) {
			return apperr.New(apperr.InsufficientBalance, "insufficient balance")
		}

		if err := r.Accounts().UpdateBalance(ctx, source.ID, source.Balance.Sub(cmd.Amount)); err != nil {
			return err
		}
		if err := r.Accounts().UpdateBalance(ctx, destination.ID, destination.Balance.Add(cmd.Amount)); err != nil {
			return err
		}

		destinationID := destination.ID
		sourceNumber = source.Number
		destinationNumber = destination.Number
		transaction = &models.Transaction{
			Amount:               cmd.Amount,
			Type:                 models.TransactionTransfer,
			SourceAccountID:      source.ID,
			DestinationAccountID: &destinationID,
		}
		return r.Transactions().Create(ctx, transaction)
	})
	if err != nil {
		return nil, classify(err, "failed to register transfer")
	}

	s.finish(ctx, transaction)
	return toView(transaction, sourceNumber, &destinationNumber), nil
}

// validateAmount rejects non-positive amounts before any lookup happens.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperr.New(apperr.InvalidValue, "transaction amount must be greater than zero")
	}
	return nil
}

// toView shapes a committed transaction for the API, with the public account
// numbers resolved inside the unit of work that created it.
func toView(transaction *models.Transaction, sourceNumber int64, destinationNumber *int64) *models.TransactionView {
	return &models.TransactionView{
		ID:                transaction.ID,
		Amount:            transaction.Amount,
		Type:              transaction.Type,
		SourceNumber:      sourceNumber,
		DestinationNumber: destinationNumber,
		CreatedAt:         transaction.CreatedAt,
	}
}

// lockTransferPair row-locks both accounts of a transfer, always in ascending
// account number order. Opposing transfers between the same pair would
// otherwise acquire the two locks in opposite orders and deadlock.
func lockTransferPair(ctx context.Context, r repository.Repos, sourceNumber, destinationNumber int64) (*models.Account, *models.Account, error) {
	first, second := sourceNumber, destinationNumber
	if first > second {
		first, second = second, first
	}

	var source, destination *models.Account
	for _, number := range []int64{first, second} {
		account, err := r.Accounts().GetByNumberForUpdate(ctx, number)
		if err != nil {
			if number == destinationNumber {
				return nil, nil, notFound(err, "destination account not found")
			}
			return nil, nil, notFound(err, "source account not found")
		}
		if number == sourceNumber {
			source = account
		} else {
			destination = account
		}
	}
	return source, destination, nil
}

// resolveOwnerAccount finds the caller's customer record and row-locks their
// account for the remainder of the unit of work.
func resolveOwnerAccount(ctx context.Context, r repository.Repos, ownerLogin string) (*models.Account, error) {
	customer, err := r.Users().GetByLogin(ctx, ownerLogin)
	if err != nil {
		return nil, notFound(err, "customer not found")
	}

	account, err := r.Accounts().GetByCustomerIDForUpdate(ctx, customer.ID)
	if err != nil {
		return nil, notFound(err, "source account not found")
	}
	return account, nil
}

// finish invalidates the read models touched by a committed transaction and
// publishes the domain event, both best effort.
func (s *TransactionCommandService) finish(ctx context.Context, transaction *models.Transaction) {
	s.accountViews.Invalidate(ctx, transaction.SourceAccountID)
	s.statementViews.Invalidate(ctx, transaction.SourceAccountID)

	event := events.TransactionCreatedEvent{
		TransactionID: transaction.ID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount.String(),
		SourceID:      transaction.SourceAccountID,
	}
	if transaction.DestinationAccountID != nil {
		event.DestinationID = *transaction.DestinationAccountID
		s.accountViews.Invalidate(ctx, *transaction.DestinationAccountID)
		s.statementViews.Invalidate(ctx, *transaction.DestinationAccountID)
	}

	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, event); err != nil {
		log.Printf("Failed to publish transaction.created event: %v", err)
	}
}
