package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/events"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

// StatementViews is the read-model source for statements.
// *repository.StatementReadRepository satisfies it.
type StatementViews interface {
	ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionView, error)
	Invalidate(ctx context.Context, accountID int64)
}

// AccountViewInvalidator drops a cached account projection.
type AccountViewInvalidator interface {
	Invalidate(ctx context.Context, accountID int64)
}

// StatementQueryService assembles the chronological transaction history of
// a customer's account and keeps the cached copies coherent with the write
// side by consuming transaction.created events.
type StatementQueryService struct {
	users        repository.UserRepository
	accounts     repository.AccountRepository
	statements   StatementViews
	accountViews AccountViewInvalidator
}

func NewStatementQueryService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	statements StatementViews,
	accountViews AccountViewInvalidator,
) *StatementQueryService {
	return &StatementQueryService{
		users:        users,
		accounts:     accounts,
		statements:   statements,
		accountViews: accountViews,
	}
}

// GetStatement returns the authenticated customer's transactions, newest
// first. The result is a materialised list, never a stream.
func (s *StatementQueryService) GetStatement(ctx context.Context, q cqrs.GetStatementQuery) ([]models.TransactionView, error) {
	customer, err := s.users.GetByLogin(ctx, q.OwnerLogin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "customer not found")
		}
		return nil, apperr.Wrap("failed to resolve customer", err)
	}

	account, err := s.accounts.GetByCustomerID(ctx, customer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "account not found")
		}
		return nil, apperr.Wrap("failed to resolve account", err)
	}

	views, err := s.statements.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, apperr.Wrap("failed to load statement", err)
	}
	return views, nil
}

// HandleTransactionEvent drops the cached projections of every account a
// committed transaction touched. Invalidation is idempotent, so duplicate
// delivery under at-least-once stream semantics is harmless.
func (s *StatementQueryService) HandleTransactionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionCreated {
		return nil
	}

	dataBytes, _ := json.Marshal(event.Data)
	var data events.TransactionCreatedEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal transaction.created event: %w", err)
	}

	s.statements.Invalidate(ctx, data.SourceID)
	s.accountViews.Invalidate(ctx, data.SourceID)
	if data.DestinationID != 0 {
		s.statements.Invalidate(ctx, data.DestinationID)
		s.accountViews.Invalidate(ctx, data.DestinationID)
	}
	log.Printf("Invalidated projections for transaction %d", data.TransactionID)
	return nil
}
