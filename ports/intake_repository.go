package ports

import (
	"context"

	"regimen/domain/core"
	"regimen/domain/tracking"
)

// IntakeRepository defines the interface for the intake log
type IntakeRepository interface {
	// Record appends one intake event
	Record(ctx context.Context, event *tracking.IntakeEvent) error

	// ListSince returns the user's intake events from the trailing number
	// of days, oldest first
	ListSince(ctx context.Context, userID core.UserID, days int) ([]tracking.IntakeEvent, error)
}
