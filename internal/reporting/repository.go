package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OwnerRollup aggregates quotation counts and revenue for one sales owner.
// Grouping is always by the owning sales user, never by the creator.
type OwnerRollup struct {
	OwnerID    uuid.UUID
	QuoteCount int64
	Revenue    float64
}

// Repository exposes quotation aggregates for reporting.
type Repository interface {
	OwnerRollups(ctx context.Context, from, to *time.Time) ([]OwnerRollup, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx backed reporting repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) OwnerRollups(ctx context.Context, from, to *time.Time) ([]OwnerRollup, error) {
	query := `
		SELECT owner_sales_user_id,
		       COUNT(*) AS quote_count,
		       COALESCE(SUM(grand_total), 0) AS revenue
		FROM quotations
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		GROUP BY owner_sales_user_id
		ORDER BY revenue DESC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollups []OwnerRollup
	for rows.Next() {
		var item OwnerRollup
		if err := rows.Scan(&item.OwnerID, &item.QuoteCount, &item.Revenue); err != nil {
			return nil, err
		}
		rollups = append(rollups, item)
	}
	return rollups, rows.Err()
}
