package postgres

import (
	"context"
	"fmt"

	"regimen/domain/core"
	"regimen/domain/tracking"
	"regimen/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// reminderRepository implements the ReminderRepository interface
type reminderRepository struct {
	db *sqlx.DB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *sqlx.DB) ports.ReminderRepository {
	return &reminderRepository{db: db}
}

// ListByUser returns the user's full reminder set, oldest first
func (r *reminderRepository) ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, label, at_minutes, days, enabled, supplement_ids, created_at, updated_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []tracking.Reminder
	for rows.Next() {
		var rem tracking.Reminder
		var supplementIDs pq.Int64Array

		err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.Label, &rem.At, &rem.Days,
			&rem.Enabled, &supplementIDs, &rem.CreatedAt, &rem.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		rem.SupplementIDs = []int64(supplementIDs)
		reminders = append(reminders, rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}

	return reminders, nil
}

// Create inserts a reminder and fills in its assigned id and timestamps
func (r *reminderRepository) Create(ctx context.Context, reminder *tracking.Reminder) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reminders (user_id, label, at_minutes, days, enabled, supplement_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, reminder.UserID, reminder.Label, reminder.At, reminder.Days, reminder.Enabled,
		pq.Int64Array(reminder.SupplementIDs)).
		Scan(&reminder.ID, &reminder.CreatedAt, &reminder.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	return nil
}

// Delete removes a reminder scoped to the owning user
func (r *reminderRepository) Delete(ctx context.Context, userID core.UserID, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM reminders WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("reminder %d: %w", id, core.ErrReminderNotFound)
	}

	return nil
}
