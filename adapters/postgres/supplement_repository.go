package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"regimen/domain/core"
	"regimen/domain/tracking"
	"regimen/ports"

	"github.com/jmoiron/sqlx"
)

// supplementRepository implements the SupplementRepository interface
type supplementRepository struct {
	db *sqlx.DB
}

// NewSupplementRepository creates a new supplement repository
func NewSupplementRepository(db *sqlx.DB) ports.SupplementRepository {
	return &supplementRepository{db: db}
}

// ListByUser returns the user's unarchived shelf, oldest first
func (r *supplementRepository) ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Supplement, error) {
	var supplements []tracking.Supplement
	err := r.db.SelectContext(ctx, &supplements, `
		SELECT id, user_id, name,
			COALESCE(brand, '') AS brand,
			COALESCE(dosage, '') AS dosage,
			COALESCE(schedule, '') AS schedule,
			archived, created_at, updated_at
		FROM supplements
		WHERE user_id = $1 AND archived = false
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplements: %w", err)
	}
	return supplements, nil
}

// GetByID retrieves a single supplement scoped to the owning user
func (r *supplementRepository) GetByID(ctx context.Context, userID core.UserID, id int64) (*tracking.Supplement, error) {
	var supplement tracking.Supplement
	err := r.db.GetContext(ctx, &supplement, `
		SELECT id, user_id, name,
			COALESCE(brand, '') AS brand,
			COALESCE(dosage, '') AS dosage,
			COALESCE(schedule, '') AS schedule,
			archived, created_at, updated_at
		FROM supplements
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("supplement %d: %w", id, core.ErrSupplementNotFound)
		}
		return nil, fmt.Errorf("failed to get supplement: %w", err)
	}

	return &supplement, nil
}

// Create inserts a supplement and fills in its assigned id and timestamps
func (r *supplementRepository) Create(ctx context.Context, supplement *tracking.Supplement) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO supplements (user_id, name, brand, dosage, schedule)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, supplement.UserID, supplement.Name, supplement.Brand, supplement.Dosage, supplement.Schedule).
		Scan(&supplement.ID, &supplement.CreatedAt, &supplement.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create supplement: %w", err)
	}

	return nil
}

// Archive soft-deletes a supplement. Reminder rows referencing the id are
// left untouched; the unscheduled filter treats their references as stale.
func (r *supplementRepository) Archive(ctx context.Context, userID core.UserID, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE supplements
		SET archived = true, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND archived = false
	`, id, userID)

	if err != nil {
		return fmt.Errorf("failed to archive supplement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("supplement %d: %w", id, core.ErrSupplementNotFound)
	}

	return nil
}
