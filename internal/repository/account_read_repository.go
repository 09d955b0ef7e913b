package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	redisx "github.com/mateus-ssouza/sevencc-bank/internal/redis"
)

const (
	accountViewKeyPrefix = "account:view:"
	accountViewTTL       = 5 * time.Minute
)

// AccountReadRepository serves account projections. Single-account reads go
// through a short-lived Redis cache which the write path invalidates after
// every balance mutation; listings always hit PostgreSQL.
type AccountReadRepository struct {
	db    *sql.DB
	cache *redisx.ViewCache[models.AccountView]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: redisx.NewViewCache[models.AccountView](redisClient, accountViewTTL),
	}
}

const accountViewQuery = `
	SELECT a.id, a.number, a.balance, a.type,
	       b.number, b.name, u.id, u.name, a.created_at
	FROM accounts a
	JOIN branches b ON b.id = a.branch_id
	JOIN users u ON u.id = a.customer_id
`

// GetByID returns the account view, trying Redis first then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	cacheKey := accountViewKeyPrefix + strconv.FormatInt(id, 10)
	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	view, err := r.scanOne(ctx, accountViewQuery+` WHERE a.id = $1`, id)
	if err != nil {
		return nil, err
	}

	// Warm the cache
	r.cache.Set(ctx, cacheKey, view)
	return view, nil
}

// GetByOwnerLogin resolves the single account bound to a customer login.
func (r *AccountReadRepository) GetByOwnerLogin(ctx context.Context, login string) (*models.AccountView, error) {
	view, err := r.scanOne(ctx, accountViewQuery+` WHERE u.login = $1`, login)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, accountViewKeyPrefix+strconv.FormatInt(view.ID, 10), view)
	return view, nil
}

func (r *AccountReadRepository) scanOne(ctx context.Context, query string, arg any) (*models.AccountView, error) {
	var view models.AccountView
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&view.ID, &view.Number, &view.Balance, &view.Type,
		&view.BranchNumber, &view.BranchName, &view.CustomerID, &view.CustomerName,
		&view.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account view: %w", err)
	}
	return &view, nil
}

// List returns all account views, optionally filtered by type.
func (r *AccountReadRepository) List(ctx context.Context, typeFilter models.AccountType) ([]models.AccountView, error) {
	query := accountViewQuery
	var args []any
	if typeFilter != "" {
		query += ` WHERE a.type = $1`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY a.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list account views: %w", err)
	}
	defer rows.Close()

	var views []models.AccountView
	for rows.Next() {
		var view models.AccountView
		if err := rows.Scan(
			&view.ID, &view.Number, &view.Balance, &view.Type,
			&view.BranchNumber, &view.BranchName, &view.CustomerID, &view.CustomerName,
			&view.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account view: %w", err)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

// Invalidate drops the cached view after a balance mutation or deletion.
func (r *AccountReadRepository) Invalidate(ctx context.Context, id int64) {
	r.cache.Delete(ctx, accountViewKeyPrefix+strconv.FormatInt(id, 10))
}
