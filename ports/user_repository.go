package ports

import (
	"context"

	"regimen/models"

	"github.com/google/uuid"
)

// UserRepository manages accounts. The app runs effectively single-user
// today; EnsureDefault is the bootstrap every startup performs, and the
// X-User-ID request header selects other accounts once they exist.
type UserRepository interface {
	// EnsureDefault returns the default account, creating it on first run
	EnsureDefault(ctx context.Context) (*models.User, error)

	// GetByID retrieves an account by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
