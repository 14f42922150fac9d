package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/platform/db"
	"github.com/lumengrid/lumengrid-quote/internal/pricing"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint hits.
const pgUniqueViolation = "23505"

// ListRequest filters the quotation listing.
type ListRequest struct {
	OwnerID  *uuid.UUID
	Customer string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// Repository persists quotations.
type Repository interface {
	Insert(ctx context.Context, q Quotation) error
	GetByQuoteID(ctx context.Context, quoteID string) (*Quotation, error)
	List(ctx context.Context, req ListRequest) ([]Quotation, int, error)
	// UpdatePricing replaces breakdown and discount fields only; the
	// captured display configuration is immutable.
	UpdatePricing(ctx context.Context, id uuid.UUID, current pricing.Breakdown, original *pricing.Breakdown, discount *pricing.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextQuoteID(ctx context.Context, name string, date time.Time) (string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Insert(ctx context.Context, q Quotation) error {
	specJSON, err := json.Marshal(q.Spec)
	if err != nil {
		return fmt.Errorf("quotes: marshal spec: %w", err)
	}
	breakdownJSON, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("quotes: marshal breakdown: %w", err)
	}

	const query = `
		INSERT INTO quotations (
			id, quote_id, customer_name, customer_email, customer_phone,
			spec, user_type, breakdown, grand_total,
			owner_sales_user_id, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())`

	_, err = r.pool.Exec(ctx, query,
		q.ID, q.QuoteID, q.CustomerName, q.CustomerEmail, q.CustomerPhone,
		specJSON, string(q.UserType), breakdownJSON, q.Breakdown.GrandTotal,
		q.OwnerSalesUserID, q.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: quote id %s already taken", shared.ErrConflict, q.QuoteID)
		}
		return err
	}
	return nil
}

func (r *repository) GetByQuoteID(ctx context.Context, quoteID string) (*Quotation, error) {
	const query = `
		SELECT id, quote_id, customer_name, customer_email, customer_phone,
		       spec, user_type, breakdown, original_breakdown, discount,
		       owner_sales_user_id, created_by, created_at, updated_at
		FROM quotations
		WHERE quote_id = $1`

	q, err := scanQuotation(r.pool.QueryRow(ctx, query, quoteID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *repository) List(ctx context.Context, req ListRequest) ([]Quotation, int, error) {
	conditions := []string{"1=1"}
	var args []any
	argPos := 1

	if req.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_sales_user_id = $%d", argPos))
		args = append(args, *req.OwnerID)
		argPos++
	}
	if req.Customer != "" {
		conditions = append(conditions, fmt.Sprintf("customer_name ILIKE $%d", argPos))
		args = append(args, "%"+req.Customer+"%")
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quotations %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT id, quote_id, customer_name, customer_email, customer_phone,
		       spec, user_type, breakdown, original_breakdown, discount,
		       owner_sales_user_id, created_by, created_at, updated_at
		FROM quotations
		%s
		ORDER BY created_at DESC, quote_id DESC
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, err
		}
		quotations = append(quotations, *q)
	}
	return quotations, total, rows.Err()
}

func (r *repository) UpdatePricing(ctx context.Context, id uuid.UUID, current pricing.Breakdown, original *pricing.Breakdown, discount *pricing.Record) error {
	breakdownJSON, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("quotes: marshal breakdown: %w", err)
	}
	var originalJSON, discountJSON []byte
	if original != nil {
		if originalJSON, err = json.Marshal(original); err != nil {
			return fmt.Errorf("quotes: marshal original breakdown: %w", err)
		}
	}
	if discount != nil {
		if discountJSON, err = json.Marshal(discount); err != nil {
			return fmt.Errorf("quotes: marshal discount: %w", err)
		}
	}

	const query = `
		UPDATE quotations
		SET breakdown = $2,
		    grand_total = $3,
		    original_breakdown = COALESCE($4, original_breakdown),
		    discount = $5,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, breakdownJSON, current.GrandTotal, originalJSON, discountJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM quotations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextQuoteID computes the next quote identifier inside a serializable
// transaction so two concurrent callers cannot both observe the same latest
// serial. Nothing is persisted here; the immediately following insert relies
// on the unique constraint as the second line of defense.
func (r *repository) NextQuoteID(ctx context.Context, name string, date time.Time) (string, error) {
	var quoteID string
	err := db.WithSerializableTx(ctx, r.pool, func(tx pgx.Tx) error {
		serial := 0
		var latest string
		err := tx.QueryRow(ctx,
			"SELECT quote_id FROM quotations WHERE quote_id ~ $1 ORDER BY quote_id DESC LIMIT 1",
			QuoteIDRegex,
		).Scan(&latest)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// First quotation ever; serial starts at 1.
		case err != nil:
			return err
		default:
			parts, err := ParseQuoteID(latest)
			if err != nil {
				return err
			}
			serial = parts.Serial
		}

		candidate, err := EncodeQuoteID(name, date, serial+1)
		if err != nil {
			return err
		}

		// The lexicographically greatest id can carry a smaller trailing
		// serial than one already used under this name/date prefix, so
		// re-check the exact candidate before handing it out.
		exists, err := r.quoteIDExists(ctx, tx, candidate)
		if err != nil {
			return err
		}
		if exists {
			prefix := quoteIDPrefix(name, date)
			var maxSerial int
			err := tx.QueryRow(ctx,
				`SELECT COALESCE(MAX(CAST(substring(quote_id FROM '[0-9]+$') AS int)), 0)
				 FROM quotations WHERE quote_id LIKE $1 || '%'`,
				prefix,
			).Scan(&maxSerial)
			if err != nil {
				return err
			}
			candidate, err = EncodeQuoteID(name, date, maxSerial+1)
			if err != nil {
				return err
			}
			exists, err = r.quoteIDExists(ctx, tx, candidate)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: quote id %s still taken after retry", shared.ErrConflict, candidate)
			}
		}

		quoteID = candidate
		return nil
	})
	if err != nil {
		return "", err
	}
	return quoteID, nil
}

func (r *repository) quoteIDExists(ctx context.Context, tx pgx.Tx, quoteID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM quotations WHERE quote_id = $1)", quoteID).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuotation(row rowScanner) (*Quotation, error) {
	var q Quotation
	var userType string
	var specJSON, breakdownJSON []byte
	var originalJSON, discountJSON []byte

	err := row.Scan(
		&q.ID, &q.QuoteID, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&specJSON, &userType, &breakdownJSON, &originalJSON, &discountJSON,
		&q.OwnerSalesUserID, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.UserType = catalog.CustomerTier(userType)
	if err := json.Unmarshal(specJSON, &q.Spec); err != nil {
		return nil, fmt.Errorf("quotes: unmarshal spec: %w", err)
	}
	if err := json.Unmarshal(breakdownJSON, &q.Breakdown); err != nil {
		return nil, fmt.Errorf("quotes: unmarshal breakdown: %w", err)
	}
	if len(originalJSON) > 0 {
		var original pricing.Breakdown
		if err := json.Unmarshal(originalJSON, &original); err != nil {
			return nil, fmt.Errorf("quotes: unmarshal original breakdown: %w", err)
		}
		q.OriginalBreakdown = &original
	}
	if len(discountJSON) > 0 {
		var rec pricing.Record
		if err := json.Unmarshal(discountJSON, &rec); err != nil {
			return nil, fmt.Errorf("quotes: unmarshal discount: %w", err)
		}
		q.Discount = &rec
	}
	return &q, nil
}
