package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (number, balance, type, branch_id, customer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.Number, account.Balance, account.Type,
		account.BranchID, account.CustomerID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

const accountColumns = `id, number, balance, type, branch_id, customer_id, created_at, updated_at`

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *accountRepository) GetByCustomerID(ctx context.Context, customerID int64) (*models.Account, error) {
	return r.get(ctx, `WHERE customer_id = $1`, customerID)
}

// The FOR UPDATE variants serialise concurrent balance mutations on the same
// row for the lifetime of the enclosing transaction.
func (r *accountRepository) GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*models.Account, error) {
	return r.get(ctx, `WHERE customer_id = $1 FOR UPDATE`, customerID)
}

func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number int64) (*models.Account, error) {
	return r.get(ctx, `WHERE number = $1 FOR UPDATE`, number)
}

func (r *accountRepository) get(ctx context.Context, where string, arg any) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ` + where

	var account models.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.Number, &account.Balance, &account.Type,
		&account.BranchID, &account.CustomerID,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, number int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE number = $1)`, number)
}

func (r *accountRepository) ExistsByCustomerID(ctx context.Context, customerID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE customer_id = $1)`, customerID)
}

func (r *accountRepository) ExistsByBranchID(ctx context.Context, branchID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE branch_id = $1)`, branchID)
}

func (r *accountRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

// List returns all accounts, or all accounts of typeFilter when it is set.
func (r *accountRepository) List(ctx context.Context, typeFilter models.AccountType) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	var args []any
	if typeFilter != "" {
		query += ` WHERE type = $1`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.Number, &account.Balance, &account.Type,
			&account.BranchID, &account.CustomerID,
			&account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return requireRow(result, "account")
}

func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRow(result, "account")
}
