package app

import (
	"context"
	"fmt"
	"time"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/ports"
)

// ImportService loads merchandiser catalog batches into the store
type ImportService struct {
	products ports.ProductRepository
	deals    ports.DealRepository
}

func NewImportService(products ports.ProductRepository, deals ports.DealRepository) *ImportService {
	return &ImportService{products: products, deals: deals}
}

// ImportSummary reports what one catalog import did. Issues are the
// row-level parse problems collected by the source; Skipped lists deal
// and sales rows that referenced catalog numbers absent from the batch.
type ImportSummary struct {
	Products  int                `json:"products"`
	Deals     int                `json:"deals"`
	SalesDays int                `json:"sales_days"`
	Skipped   []string           `json:"skipped,omitempty"`
	Issues    []catalog.RowIssue `json:"issues,omitempty"`
	RuntimeMs int64              `json:"runtime_ms"`
}

// Run reads the full batch from the source and upserts it. Products go
// first so deal and sales rows can resolve their catalog numbers to the
// product ids assigned during upsert. Rows referencing unknown catalog
// numbers are skipped and reported, never fatal; storage errors are.
func (s *ImportService) Run(ctx context.Context, source ports.CatalogSource) (*ImportSummary, error) {
	startTime := time.Now()

	batch, err := source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog source: %w", err)
	}

	summary := &ImportSummary{Issues: batch.Issues}

	idByCatalogNumber := make(map[int64]core.ProductID, len(batch.Products))
	for i := range batch.Products {
		product := &batch.Products[i]
		if err := s.products.Upsert(ctx, product); err != nil {
			return nil, fmt.Errorf("failed to upsert product %d: %w", product.CatalogNumber, err)
		}
		idByCatalogNumber[product.CatalogNumber] = product.ID
		summary.Products++
	}

	for _, row := range batch.Deals {
		productID, ok := idByCatalogNumber[row.CatalogNumber]
		if !ok {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("deal for unknown catalog number %d", row.CatalogNumber))
			continue
		}
		deal := &catalog.Deal{ProductID: productID, PriceCents: row.PriceCents, Window: row.Window}
		if err := s.deals.Upsert(ctx, deal); err != nil {
			return nil, fmt.Errorf("failed to upsert deal for catalog number %d: %w", row.CatalogNumber, err)
		}
		summary.Deals++
	}

	for _, row := range batch.Sales {
		productID, ok := idByCatalogNumber[row.CatalogNumber]
		if !ok {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("daily sales for unknown catalog number %d", row.CatalogNumber))
			continue
		}
		sales := catalog.DailySales{ProductID: productID, Day: row.Day, Units: row.Units}
		if err := s.products.UpsertDailySales(ctx, sales); err != nil {
			return nil, fmt.Errorf("failed to upsert daily sales for catalog number %d: %w", row.CatalogNumber, err)
		}
		summary.SalesDays++
	}

	summary.RuntimeMs = time.Since(startTime).Milliseconds()
	return summary, nil
}
