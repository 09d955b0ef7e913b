package repository

import (
	"context"
	"fmt"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (amount, type, source_account_id, destination_account_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		transaction.Amount, transaction.Type,
		transaction.SourceAccountID, transaction.DestinationAccountID,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListByAccountID(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, amount, type, source_account_id, destination_account_id, created_at
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(
			&transaction.ID, &transaction.Amount, &transaction.Type,
			&transaction.SourceAccountID, &transaction.DestinationAccountID,
			&transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
