package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB) ports.ProductRepository {
	return &productRepository{db: db}
}

// GetByID retrieves a product by its ID
func (r *productRepository) GetByID(ctx context.Context, id core.ProductID) (*catalog.Product, error) {
	query := `SELECT
		id, catalog_number, name, COALESCE(brand, '') as brand, COALESCE(category, '') as category,
		COALESCE(description, '') as description, price_cents, COALESCE(rating, 0.0) as rating,
		COALESCE(sales_rank, 0) as sales_rank, created_at
	FROM products WHERE id = $1`

	var product catalog.Product

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.CatalogNumber, &product.Name, &product.Brand, &product.Category,
		&product.Description, &product.PriceCents, &product.Rating,
		&product.SalesRank, &product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %s: %w", id, core.ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// ListBestSellers returns the top ranked products, best rank first
func (r *productRepository) ListBestSellers(ctx context.Context, limit int) ([]catalog.Product, error) {
	query := `SELECT
		id, catalog_number, name, COALESCE(brand, '') as brand, COALESCE(category, '') as category,
		COALESCE(description, '') as description, price_cents, COALESCE(rating, 0.0) as rating,
		COALESCE(sales_rank, 0) as sales_rank, created_at
	FROM products
	WHERE sales_rank > 0
	ORDER BY sales_rank ASC
	LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query best sellers: %w", err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

// ListNewArrivals returns the most recently added products
func (r *productRepository) ListNewArrivals(ctx context.Context, limit int) ([]catalog.Product, error) {
	query := `SELECT
		id, catalog_number, name, COALESCE(brand, '') as brand, COALESCE(category, '') as category,
		COALESCE(description, '') as description, price_cents, COALESCE(rating, 0.0) as rating,
		COALESCE(sales_rank, 0) as sales_rank, created_at
	FROM products
	ORDER BY created_at DESC, catalog_number DESC
	LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query new arrivals: %w", err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

// ListByIDs returns products for the given ids in the id order. Ids with
// no matching product are skipped.
func (r *productRepository) ListByIDs(ctx context.Context, ids []core.ProductID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = string(id)
	}

	query := `SELECT
		id, catalog_number, name, COALESCE(brand, '') as brand, COALESCE(category, '') as category,
		COALESCE(description, '') as description, price_cents, COALESCE(rating, 0.0) as rating,
		COALESCE(sales_rank, 0) as sales_rank, created_at
	FROM products WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	defer rows.Close()

	fetched, err := r.scanProducts(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[core.ProductID]catalog.Product, len(fetched))
	for _, product := range fetched {
		byID[product.ID] = product
	}

	ordered := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			ordered = append(ordered, product)
		}
	}

	return ordered, nil
}

// ListCategories returns distinct categories with product counts, largest
// first
func (r *productRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	query := `SELECT category, COUNT(*)
	FROM products
	WHERE category <> ''
	GROUP BY category
	ORDER BY COUNT(*) DESC, category ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var category catalog.Category
		if err := rows.Scan(&category.Name, &category.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		category.Slug = catalog.CategorySlug(category.Name)
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

// ListDailySales returns per-product daily unit sales for the trailing
// number of days
func (r *productRepository) ListDailySales(ctx context.Context, days int) ([]catalog.DailySales, error) {
	query := `SELECT product_id, day, units
	FROM product_daily_sales
	WHERE day >= CURRENT_DATE - $1
	ORDER BY product_id, day`

	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	var series []catalog.DailySales
	for rows.Next() {
		var point catalog.DailySales
		if err := rows.Scan(&point.ProductID, &point.Day, &point.Units); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily sales: %w", err)
	}

	return series, nil
}

// UpsertDailySales inserts or replaces one day of a product's sales
func (r *productRepository) UpsertDailySales(ctx context.Context, sales catalog.DailySales) error {
	query := `INSERT INTO product_daily_sales (product_id, day, units)
	VALUES ($1, $2, $3)
	ON CONFLICT (product_id, day) DO UPDATE SET units = EXCLUDED.units`

	_, err := r.db.ExecContext(ctx, query, sales.ProductID, sales.Day, sales.Units)
	if err != nil {
		return fmt.Errorf("failed to upsert daily sales for product %s: %w", sales.ProductID, err)
	}

	return nil
}

// Upsert inserts or updates a product keyed by catalog number, filling in
// the canonical id and created_at
func (r *productRepository) Upsert(ctx context.Context, product *catalog.Product) error {
	query := `INSERT INTO products (
		catalog_number, name, brand, category, description, price_cents, rating, sales_rank
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8
	)
	ON CONFLICT (catalog_number) DO UPDATE SET
		name = EXCLUDED.name,
		brand = EXCLUDED.brand,
		category = EXCLUDED.category,
		description = EXCLUDED.description,
		price_cents = EXCLUDED.price_cents,
		rating = EXCLUDED.rating,
		sales_rank = EXCLUDED.sales_rank
	RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		product.CatalogNumber, product.Name, product.Brand, product.Category,
		product.Description, product.PriceCents, product.Rating, product.SalesRank,
	).Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert product %d: %w", product.CatalogNumber, err)
	}

	return nil
}

// scanProducts is a helper function to scan multiple product rows
func (r *productRepository) scanProducts(rows *sql.Rows) ([]catalog.Product, error) {
	var products []catalog.Product
	for rows.Next() {
		var product catalog.Product

		err := rows.Scan(
			&product.ID, &product.CatalogNumber, &product.Name, &product.Brand, &product.Category,
			&product.Description, &product.PriceCents, &product.Rating,
			&product.SalesRank, &product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}
