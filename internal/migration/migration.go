package migration

import (
	"context"
	"fmt"

	"regimen/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create users table")
	}

	if err := r.createProductsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create products table")
	}

	if err := r.addProductRankingColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add products ranking columns")
	}

	if err := r.createDealsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create deals table")
	}

	if err := r.createDailySalesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create product_daily_sales table")
	}

	if err := r.createSupplementsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create supplements table")
	}

	if err := r.createRemindersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create reminders table")
	}

	if err := r.createIntakeEventsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create intake_events table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	if err := r.insertDefaultUser(ctx, db); err != nil {
		return errors.Wrap(err, "failed to insert default user")
	}

	return nil
}

func (r *MigrationRunner) createUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(100) UNIQUE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createProductsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			catalog_number BIGINT UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			brand VARCHAR(255) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price_cents BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

// addProductRankingColumns backfills the showcase ranking columns on
// installations that predate them.
func (r *MigrationRunner) addProductRankingColumns(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			-- Add rating column if it doesn't exist
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'products' AND column_name = 'rating'
			) THEN
				ALTER TABLE products ADD COLUMN rating DECIMAL(3,2) NOT NULL DEFAULT 0.0;
			END IF;

			-- Add sales_rank column if it doesn't exist
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'products' AND column_name = 'sales_rank'
			) THEN
				ALTER TABLE products ADD COLUMN sales_rank INTEGER NOT NULL DEFAULT 0;
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createDealsTable(ctx context.Context, db *sqlx.DB) error {
	// One deal row per product; imports replace the previous window.
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deals (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			product_id UUID UNIQUE NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			price_cents BIGINT NOT NULL,
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
			ends_at TIMESTAMP WITH TIME ZONE NOT NULL,
			CONSTRAINT deals_window_valid CHECK (starts_at < ends_at)
		)
	`)
	return err
}

func (r *MigrationRunner) createDailySalesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS product_daily_sales (
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			day DATE NOT NULL,
			units INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (product_id, day)
		)
	`)
	return err
}

func (r *MigrationRunner) createSupplementsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS supplements (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			brand VARCHAR(255) NOT NULL DEFAULT '',
			dosage VARCHAR(100) NOT NULL DEFAULT '',
			schedule VARCHAR(255) NOT NULL DEFAULT '',
			archived BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createRemindersTable(ctx context.Context, db *sqlx.DB) error {
	// supplement_ids carries no foreign key: a reminder may keep ids of
	// supplements archived later, and readers treat those ids as absent.
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reminders (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			label VARCHAR(255) NOT NULL,
			at_minutes SMALLINT NOT NULL DEFAULT 480,
			days SMALLINT NOT NULL DEFAULT 127,
			enabled BOOLEAN NOT NULL DEFAULT true,
			supplement_ids BIGINT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIntakeEventsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS intake_events (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			supplement_id BIGINT NOT NULL REFERENCES supplements(id) ON DELETE CASCADE,
			taken_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_sales_rank ON products(sales_rank)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Deal indexes
		"CREATE INDEX IF NOT EXISTS idx_deals_window ON deals(starts_at, ends_at)",
		"CREATE INDEX IF NOT EXISTS idx_deals_ends_at ON deals(ends_at)",

		// Daily sales indexes
		"CREATE INDEX IF NOT EXISTS idx_daily_sales_day ON product_daily_sales(day DESC)",

		// Supplement indexes
		"CREATE INDEX IF NOT EXISTS idx_supplements_user_id ON supplements(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_supplements_user_active ON supplements(user_id, archived)",

		// Reminder indexes
		"CREATE INDEX IF NOT EXISTS idx_reminders_user_id ON reminders(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_reminders_user_enabled ON reminders(user_id, enabled)",

		// Intake event indexes
		"CREATE INDEX IF NOT EXISTS idx_intakes_user_taken ON intake_events(user_id, taken_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_intakes_supplement_id ON intake_events(supplement_id)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			fmt.Printf("Warning: failed to create index: %v\n", err)
		}
	}

	return nil
}

func (r *MigrationRunner) insertDefaultUser(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, is_active)
		VALUES ('550e8400-e29b-41d4-a716-446655440000', 'default@regimen.local', 'default', true)
		ON CONFLICT (email) DO NOTHING
	`)
	if err != nil {
		// Log but don't fail on default user insertion
		fmt.Printf("Warning: failed to insert default user: %v\n", err)
	}
	return nil
}
