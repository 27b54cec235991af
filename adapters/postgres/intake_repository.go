package postgres

import (
	"context"
	"fmt"

	"regimen/domain/core"
	"regimen/domain/tracking"
	"regimen/ports"

	"github.com/jmoiron/sqlx"
)

// intakeRepository implements the IntakeRepository interface
type intakeRepository struct {
	db *sqlx.DB
}

// NewIntakeRepository creates a new intake log repository
func NewIntakeRepository(db *sqlx.DB) ports.IntakeRepository {
	return &intakeRepository{db: db}
}

// Record appends one intake event and fills in its assigned id
func (r *intakeRepository) Record(ctx context.Context, event *tracking.IntakeEvent) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO intake_events (user_id, supplement_id, taken_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, event.UserID, event.SupplementID, event.TakenAt).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("failed to record intake: %w", err)
	}

	return nil
}

// ListSince returns the user's intake events from the trailing number of
// days, oldest first
func (r *intakeRepository) ListSince(ctx context.Context, userID core.UserID, days int) ([]tracking.IntakeEvent, error) {
	var events []tracking.IntakeEvent
	err := r.db.SelectContext(ctx, &events, `
		SELECT id, user_id, supplement_id, taken_at
		FROM intake_events
		WHERE user_id = $1 AND taken_at >= NOW() - make_interval(days => $2)
		ORDER BY taken_at
	`, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list intakes: %w", err)
	}
	return events, nil
}
