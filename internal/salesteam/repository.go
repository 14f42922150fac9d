package salesteam

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// Repository reads sales users.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*SalesUser, error)
	List(ctx context.Context) ([]SalesUser, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*SalesUser, error) {
	const query = `
		SELECT id, name, role, allowed_customer_types, created_at, updated_at
		FROM sales_users
		WHERE id = $1`

	var u SalesUser
	var allowed []string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Role, &allowed, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.AllowedCustomerTypes = tiersFromStrings(allowed)
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]SalesUser, error) {
	const query = `
		SELECT id, name, role, allowed_customer_types, created_at, updated_at
		FROM sales_users
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []SalesUser
	for rows.Next() {
		var u SalesUser
		var allowed []string
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &allowed, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.AllowedCustomerTypes = tiersFromStrings(allowed)
		users = append(users, u)
	}
	return users, rows.Err()
}

func tiersFromStrings(raw []string) []catalog.CustomerTier {
	if len(raw) == 0 {
		return nil
	}
	tiers := make([]catalog.CustomerTier, 0, len(raw))
	for _, s := range raw {
		tiers = append(tiers, catalog.CustomerTier(s))
	}
	return tiers
}
