package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

type branchRepository struct {
	db DBTX
}

func NewBranchRepository(db DBTX) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (name, number, phone, city, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		branch.Name, branch.Number, branch.Phone, branch.City, branch.State,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

func (r *branchRepository) GetByID(ctx context.Context, id int64) (*models.Branch, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *branchRepository) GetByNumber(ctx context.Context, number int64) (*models.Branch, error) {
	return r.get(ctx, `WHERE number = $1`, number)
}

func (r *branchRepository) get(ctx context.Context, where string, arg any) (*models.Branch, error) {
	query := `
		SELECT id, name, number, phone, city, state, created_at, updated_at
		FROM branches ` + where

	var branch models.Branch
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&branch.ID, &branch.Name, &branch.Number, &branch.Phone,
		&branch.City, &branch.State, &branch.CreatedAt, &branch.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("branch: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context) ([]models.Branch, error) {
	query := `
		SELECT id, name, number, phone, city, state, created_at, updated_at
		FROM branches
		ORDER BY number
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		var branch models.Branch
		if err := rows.Scan(
			&branch.ID, &branch.Name, &branch.Number, &branch.Phone,
			&branch.City, &branch.State, &branch.CreatedAt, &branch.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

func (r *branchRepository) Update(ctx context.Context, branch *models.Branch) error {
	query := `
		UPDATE branches
		SET name = $2, phone = $3, city = $4, state = $5, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		branch.ID, branch.Name, branch.Phone, branch.City, branch.State)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return requireRow(result, "branch")
}

func (r *branchRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	return requireRow(result, "branch")
}

// requireRow converts a zero-row write into ErrNotFound.
func requireRow(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
