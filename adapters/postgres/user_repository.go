package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"regimen/domain/core"
	"regimen/models"
	"regimen/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// The account every fresh install starts with. Requests without an
// X-User-ID header are served as this user.
var defaultUserID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

// userRepository implements the UserRepository interface
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &userRepository{db: db}
}

// EnsureDefault returns the default account, creating it on first run.
// The insert ignores conflicts so concurrent startups converge on the
// same row no matter which process won.
func (r *userRepository) EnsureDefault(ctx context.Context) (*models.User, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (id) DO NOTHING
	`, defaultUserID, "default@regimen.local", "default")
	if err != nil {
		return nil, fmt.Errorf("failed to insert default user: %w", err)
	}

	return r.GetByID(ctx, defaultUserID)
}

// GetByID retrieves an account by id
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, email, username, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, core.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
