package postgres

import (
	"context"
	"fmt"
	"time"

	"regimen/domain/catalog"
	"regimen/ports"

	"github.com/jmoiron/sqlx"
)

// dealRepository implements the DealRepository interface
type dealRepository struct {
	db *sqlx.DB
}

// NewDealRepository creates a new deal repository
func NewDealRepository(db *sqlx.DB) ports.DealRepository {
	return &dealRepository{db: db}
}

// ListActive returns deals whose window contains now, soonest expiry first
func (r *dealRepository) ListActive(ctx context.Context, now time.Time) ([]catalog.Deal, error) {
	query := `SELECT id, product_id, price_cents, starts_at, ends_at
	FROM deals
	WHERE starts_at <= $1 AND $1 < ends_at
	ORDER BY ends_at ASC`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query active deals: %w", err)
	}
	defer rows.Close()

	var deals []catalog.Deal
	for rows.Next() {
		var deal catalog.Deal
		err := rows.Scan(
			&deal.ID, &deal.ProductID, &deal.PriceCents,
			&deal.Window.StartsAt, &deal.Window.EndsAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deals: %w", err)
	}

	return deals, nil
}

// Upsert inserts or updates the product's deal, filling in the canonical id
func (r *dealRepository) Upsert(ctx context.Context, deal *catalog.Deal) error {
	query := `INSERT INTO deals (product_id, price_cents, starts_at, ends_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (product_id) DO UPDATE SET
		price_cents = EXCLUDED.price_cents,
		starts_at = EXCLUDED.starts_at,
		ends_at = EXCLUDED.ends_at
	RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		deal.ProductID, deal.PriceCents, deal.Window.StartsAt, deal.Window.EndsAt,
	).Scan(&deal.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert deal for product %s: %w", deal.ProductID, err)
	}

	return nil
}
