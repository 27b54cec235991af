package ports

import (
	"context"
	"time"

	"regimen/domain/catalog"
)

// DealRepository defines the interface for time-windowed deal operations
type DealRepository interface {
	// ListActive returns deals whose window contains now, soonest expiry
	// first
	ListActive(ctx context.Context, now time.Time) ([]catalog.Deal, error)

	// Upsert inserts or updates a deal by product
	Upsert(ctx context.Context, deal *catalog.Deal) error
}
