// Package db owns the PostgreSQL connection and the idempotent schema
// bootstrap run at startup.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(connStr string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return conn, nil
}

// InitSchema creates the tables if they do not exist. Transactions cascade on
// account deletion; an account can only be deleted once its balance is zero,
// so the cascade removes history, never money.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS branches (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(45) NOT NULL,
		number BIGINT NOT NULL UNIQUE,
		phone VARCHAR(13) NOT NULL,
		city VARCHAR(60) NOT NULL,
		state VARCHAR(2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		cpf VARCHAR(11) NOT NULL UNIQUE,
		email VARCHAR(120) NOT NULL UNIQUE,
		phone VARCHAR(13) NOT NULL,
		login VARCHAR(60) NOT NULL UNIQUE,
		password_hash VARCHAR(72) NOT NULL,
		role VARCHAR(10) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		number BIGINT NOT NULL UNIQUE,
		balance NUMERIC(15,2) NOT NULL DEFAULT 0,
		type VARCHAR(10) NOT NULL,
		branch_id BIGINT NOT NULL REFERENCES branches(id),
		customer_id BIGINT NOT NULL UNIQUE REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		amount NUMERIC(15,2) NOT NULL,
		type VARCHAR(12) NOT NULL,
		source_account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		destination_account_id BIGINT REFERENCES accounts(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions(source_account_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_destination ON transactions(destination_account_id);
	`
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
