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
	statementKeyPrefix = "statement:account:"
	statementTTL       = 5 * time.Minute
)

// statementEntry wraps the cached slice so the generic cache can bind to it.
type statementEntry struct {
	Transactions []models.TransactionView `json:"transactions"`
}

// StatementReadRepository materialises statements, newest transaction first.
// Cached copies are dropped by the transaction.created projector, with the
// TTL as a safety net against missed events.
type StatementReadRepository struct {
	db    *sql.DB
	cache *redisx.ViewCache[statementEntry]
}

func NewStatementReadRepository(db *sql.DB, redisClient *goredis.Client) *StatementReadRepository {
	return &StatementReadRepository{
		db:    db,
		cache: redisx.NewViewCache[statementEntry](redisClient, statementTTL),
	}
}

// ListByAccountID returns every transaction referencing the account as source
// or destination, ordered by timestamp descending with id as the tiebreaker.
func (r *StatementReadRepository) ListByAccountID(ctx context.Context, accountID int64) ([]models.TransactionView, error) {
	cacheKey := statementKeyPrefix + strconv.FormatInt(accountID, 10)
	if entry, ok := r.cache.Get(ctx, cacheKey); ok {
		return entry.Transactions, nil
	}

	query := `
		SELECT t.id, t.amount, t.type, src.number, dst.number, t.created_at
		FROM transactions t
		JOIN accounts src ON src.id = t.source_account_id
		LEFT JOIN accounts dst ON dst.id = t.destination_account_id
		WHERE t.source_account_id = $1 OR t.destination_account_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}
	defer rows.Close()

	views := []models.TransactionView{}
	for rows.Next() {
		var view models.TransactionView
		var destination sql.NullInt64
		if err := rows.Scan(
			&view.ID, &view.Amount, &view.Type,
			&view.SourceNumber, &destination, &view.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		if destination.Valid {
			view.DestinationNumber = &destination.Int64
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.Set(ctx, cacheKey, &statementEntry{Transactions: views})
	return views, nil
}

// Invalidate drops the cached statement for an account.
func (r *StatementReadRepository) Invalidate(ctx context.Context, accountID int64) {
	r.cache.Delete(ctx, statementKeyPrefix+strconv.FormatInt(accountID, 10))
}
