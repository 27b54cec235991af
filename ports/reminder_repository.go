package ports

import (
	"context"

	"regimen/domain/core"
	"regimen/domain/tracking"
)

// ReminderRepository defines the interface for reminder operations
type ReminderRepository interface {
	// ListByUser returns the user's full current reminder set
	ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Reminder, error)

	// Create inserts a reminder and fills in its assigned id
	Create(ctx context.Context, reminder *tracking.Reminder) error

	// Delete removes a reminder
	Delete(ctx context.Context, userID core.UserID, id int64) error
}
