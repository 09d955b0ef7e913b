// Package repository defines the persistence contracts for the banking core
// and their PostgreSQL implementations. Write repositories operate against
// the store of record; the read repositories in this package additionally
// serve projections from a Redis cache.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by any lookup whose target row does not exist.
// Services translate it into the domain error for the entity they resolved.
var ErrNotFound = errors.New("not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx, letting the same repository
// code run standalone or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id int64) (*models.Branch, error)
	GetByNumber(ctx context.Context, number int64) (*models.Branch, error)
	List(ctx context.Context) ([]models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByLoginEmailOrCPF(ctx context.Context, login, email, cpf string) (bool, error)
	List(ctx context.Context, role models.UserRole) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	// GetByCustomerIDForUpdate resolves a customer's account and, when run
	// inside a unit of work, row-locks it for the remainder of the tx.
	GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*models.Account, error)
	GetByCustomerID(ctx context.Context, customerID int64) (*models.Account, error)
	GetByNumberForUpdate(ctx context.Context, number int64) (*models.Account, error)
	ExistsByNumber(ctx context.Context, number int64) (bool, error)
	ExistsByCustomerID(ctx context.Context, customerID int64) (bool, error)
	ExistsByBranchID(ctx context.Context, branchID int64) (bool, error)
	List(ctx context.Context, typeFilter models.AccountType) ([]models.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	// ListByAccountID returns every transaction referencing the account as
	// source or destination, newest first (id breaks timestamp ties).
	ListByAccountID(ctx context.Context, accountID int64) ([]models.Transaction, error)
}

// Repos bundles the write repositories, either bound to the shared connection
// pool or to one in-flight transaction.
type Repos interface {
	Branches() BranchRepository
	Users() UserRepository
	Accounts() AccountRepository
	Transactions() TransactionRepository
}

// Store is the root persistence handle. Direct repository access runs in
// autocommit mode; InTx runs a function against tx-bound repositories inside
// a single database transaction.
type Store struct {
	db           *sql.DB
	branches     BranchRepository
	users        UserRepository
	accounts     AccountRepository
	transactions TransactionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		branches:     NewBranchRepository(db),
		users:        NewUserRepository(db),
		accounts:     NewAccountRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

func (s *Store) Branches() BranchRepository          { return s.branches }
func (s *Store) Users() UserRepository               { return s.users }
func (s *Store) Accounts() AccountRepository         { return s.accounts }
func (s *Store) Transactions() TransactionRepository { return s.transactions }

// InTx executes fn inside one database transaction. All reads and writes made
// through the passed Repos either commit together or roll back together.
func (s *Store) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	bound := &txRepos{
		branches:     NewBranchRepository(tx),
		users:        NewUserRepository(tx),
		accounts:     NewAccountRepository(tx),
		transactions: NewTransactionRepository(tx),
	}

	if err := fn(bound); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txRepos struct {
	branches     BranchRepository
	users        UserRepository
	accounts     AccountRepository
	transactions TransactionRepository
}

func (t *txRepos) Branches() BranchRepository          { return t.branches }
func (t *txRepos) Users() UserRepository               { return t.users }
func (t *txRepos) Accounts() AccountRepository         { return t.accounts }
func (t *txRepos) Transactions() TransactionRepository { return t.transactions }
