// Package settlement implements the monthly batch applying interest to
// savings accounts and the maintenance fee to checking accounts.
package settlement

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/mateus-ssouza/sevencc-bank/internal/events"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

var (
	monthlyInterestRate = decimal.RequireFromString("0.005")
	monthlyFee          = decimal.RequireFromString("20.00")
)

// Publisher emits settlement events, best effort.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// ViewInvalidator drops a cached account projection after its balance moved.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, accountID int64)
}

// Service applies the monthly interest and fee passes. Each account is
// persisted individually; a failure on one account is logged and the pass
// continues, so a partial batch is possible and re-running a pass within the
// same month applies it again. Both are documented properties of the job.
type Service struct {
	accounts  repository.AccountRepository
	views     ViewInvalidator
	publisher Publisher
}

func NewService(accounts repository.AccountRepository, views ViewInvalidator, publisher Publisher) *Service {
	return &Service{accounts: accounts, views: views, publisher: publisher}
}

// Run executes the two passes in order: interest, then fee.
func (s *Service) Run(ctx context.Context) {
	if err := s.ApplyMonthlyInterest(ctx); err != nil {
		log.Printf("Interest pass aborted: %v", err)
	}
	if err := s.ApplyMonthlyFee(ctx); err != nil {
		log.Printf("Fee pass aborted: %v", err)
	}
}

// ApplyMonthlyInterest credits 0.5% to every savings account with a positive
// balance. Zero and negative balances accrue nothing. The credit is rounded
// to cents so the published balance matches what the NUMERIC(15,2) column
// stores.
func (s *Service) ApplyMonthlyInterest(ctx context.Context) error {
	accounts, err := s.accounts.List(ctx, models.AccountSavings)
	if err != nil {
		return err
	}

	applied := 0
	for _, account := range accounts {
		if !account.Balance.IsPositive() {
			continue
		}
		interest := account.Balance.Mul(monthlyInterestRate).Round(2)
		if err := s.settle(ctx, account, interest); err != nil {
			log.Printf("Failed to apply interest to account %d: %v", account.ID, err)
			continue
		}
		applied++
	}
	log.Printf("Monthly interest applied to %d of %d savings accounts", applied, len(accounts))
	return nil
}

// ApplyMonthlyFee debits the fixed maintenance fee from every checking
// account. The debit is unconditional and may drive a balance negative;
// that asymmetry with the engine's overdraft rule is intentional.
func (s *Service) ApplyMonthlyFee(ctx context.Context) error {
	accounts, err := s.accounts.List(ctx, models.AccountChecking)
	if err != nil {
		return err
	}

	applied := 0
	for _, account := range accounts {
		if err := s.settle(ctx, account, monthlyFee.Neg()); err != nil {
			log.Printf("Failed to apply fee to account %d: %v", account.ID, err)
			continue
		}
		applied++
	}
	log.Printf("Monthly fee applied to %d of %d checking accounts", applied, len(accounts))
	return nil
}

// settle persists one account's balance change in its own implicit unit of
// work and keeps the read model and event stream informed.
func (s *Service) settle(ctx context.Context, account models.Account, change decimal.Decimal) error {
	newBalance := account.Balance.Add(change)
	if err := s.accounts.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return err
	}

	s.views.Invalidate(ctx, account.ID)

	eventType := events.InterestApplied
	if change.IsNegative() {
		eventType = events.FeeApplied
	}
	if err := s.publisher.Publish(ctx, events.SettlementEventsStream, eventType, events.SettlementAppliedEvent{
		AccountID:  account.ID,
		NewBalance: newBalance.String(),
		Change:     change.String(),
	}); err != nil {
		log.Printf("Failed to publish settlement event for account %d: %v", account.ID, err)
	}
	return nil
}
