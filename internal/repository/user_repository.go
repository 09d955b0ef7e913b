package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, cpf, email, phone, login, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.CPF, user.Email, user.Phone,
		user.Login, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.get(ctx, `WHERE login = $1`, login)
}

func (r *userRepository) get(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT id, name, cpf, email, phone, login, password_hash, role, created_at, updated_at
		FROM users ` + where

	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.CPF, &user.Email, &user.Phone,
		&user.Login, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByLoginEmailOrCPF(ctx context.Context, login, email, cpf string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE login = $1 OR email = $2 OR cpf = $3)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, login, email, cpf).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *userRepository) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := `
		SELECT id, name, cpf, email, phone, login, password_hash, role, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.CPF, &user.Email, &user.Phone,
			&user.Login, &user.PasswordHash, &user.Role,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Phone)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result, "user")
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(result, "user")
}
