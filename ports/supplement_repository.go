package ports

import (
	"context"

	"regimen/domain/core"
	"regimen/domain/tracking"
)

// SupplementRepository defines the interface for supplement shelf operations
type SupplementRepository interface {
	// ListByUser returns the user's full current shelf, oldest first.
	// Screens always load the complete snapshot; there is no pagination.
	ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Supplement, error)

	// GetByID retrieves a single supplement
	GetByID(ctx context.Context, userID core.UserID, id int64) (*tracking.Supplement, error)

	// Create inserts a supplement and fills in its assigned id
	Create(ctx context.Context, supplement *tracking.Supplement) error

	// Archive soft-deletes a supplement; reminders keep their stale ids
	Archive(ctx context.Context, userID core.UserID, id int64) error
}
