package ports

import (
	"context"

	"regimen/domain/catalog"
)

// CatalogSource reads a complete catalog batch from an external authoring
// source, such as a merchandiser workbook
type CatalogSource interface {
	// Read parses the full source. Row-level problems land in the batch's
	// Issues; only unreadable sources return an error.
	Read(ctx context.Context) (*catalog.ImportBatch, error)
}
