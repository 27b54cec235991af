package ports

import (
	"context"

	"regimen/domain/catalog"
	"regimen/domain/core"
)

// ProductRepository defines the interface for catalog product operations
type ProductRepository interface {
	// GetByID retrieves a single product
	GetByID(ctx context.Context, id core.ProductID) (*catalog.Product, error)

	// ListBestSellers returns the top products by sales rank
	ListBestSellers(ctx context.Context, limit int) ([]catalog.Product, error)

	// ListNewArrivals returns the most recently added products
	ListNewArrivals(ctx context.Context, limit int) ([]catalog.Product, error)

	// ListByIDs returns products for the given ids, preserving the id order.
	// Ids with no matching product are skipped.
	ListByIDs(ctx context.Context, ids []core.ProductID) ([]catalog.Product, error)

	// ListCategories returns distinct categories with product counts
	ListCategories(ctx context.Context) ([]catalog.Category, error)

	// ListDailySales returns per-product daily unit sales for the trailing
	// number of days
	ListDailySales(ctx context.Context, days int) ([]catalog.DailySales, error)

	// UpsertDailySales inserts or replaces one day of a product's sales
	UpsertDailySales(ctx context.Context, sales catalog.DailySales) error

	// Upsert inserts or updates a product by catalog number
	Upsert(ctx context.Context, product *catalog.Product) error
}
