package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"regimen/adapters/postgres"
	"regimen/adapters/snapshot"
	"regimen/app"
	"regimen/domain/core"
	"regimen/domain/feed"
	"regimen/internal/api"
	"regimen/internal/config"
	"regimen/internal/layout"
	"regimen/models"
	"regimen/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	UserRepo       ports.UserRepository
	SupplementRepo ports.SupplementRepository
	ReminderRepo   ports.ReminderRepository
	IntakeRepo     ports.IntakeRepository
	ProductRepo    ports.ProductRepository
	DealRepo       ports.DealRepository
	SnapshotStore  ports.SnapshotStore

	// Feed components
	LayoutRegistry *layout.Registry
	LayoutWatcher  *layout.Watcher
	FeedHub        *api.FeedHub

	// Application services
	Home        *app.HomeService
	Supplements *app.SupplementsService
	Insights    *app.InsightsService
	Import      *app.ImportService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &Container{
		Config: cfg,
		Logger: logger,
	}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	if err := c.initRepositories(); err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if err := c.initFeed(); err != nil {
		return fmt.Errorf("failed to initialize feed components: %w", err)
	}

	c.initServices()

	c.Logger.Info("Container initialized")
	return nil
}

// initRepositories initializes data access repositories
func (c *Container) initRepositories() error {
	c.UserRepo = postgres.NewUserRepository(c.DB)
	c.SupplementRepo = postgres.NewSupplementRepository(c.DB)
	c.ReminderRepo = postgres.NewReminderRepository(c.DB)
	c.IntakeRepo = postgres.NewIntakeRepository(c.DB)
	c.ProductRepo = postgres.NewProductRepository(c.DB)
	c.DealRepo = postgres.NewDealRepository(c.DB)

	if c.Config.Snapshot.Enabled {
		c.SnapshotStore = snapshot.NewDiskvStore(c.Config.Snapshot.Dir)
	}
	return nil
}

// initFeed initializes the layout registry, the optional file watcher,
// and the SSE hub. A bad layout file at startup is not fatal: the
// registry keeps serving the built-in layout until the file parses.
func (c *Container) initFeed() error {
	c.LayoutRegistry = layout.NewRegistry(c.Config.Layout.File, c.Logger)
	if err := c.LayoutRegistry.Reload(); err != nil {
		c.Logger.Warn("Startup layout load failed, serving built-in layout", zap.Error(err))
	}

	c.FeedHub = api.NewFeedHub(c.Logger)

	storefront := c.Config.Feed.Storefront
	c.LayoutRegistry.OnSwap(func(swapped feed.Layout) {
		c.FeedHub.Broadcast(api.FeedEvent{
			Storefront: storefront,
			EventType:  api.EventLayoutReloaded,
			Data: map[string]interface{}{
				"hash":     swapped.Hash().String(),
				"sections": len(swapped.Sections),
			},
		})
	})

	if c.Config.Layout.Watch && c.Config.Layout.File != "" {
		watcher, err := layout.NewWatcher(c.LayoutRegistry, c.Config.Layout.File, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to create layout watcher: %w", err)
		}
		c.LayoutWatcher = watcher
	}
	return nil
}

// initServices wires the application services
func (c *Container) initServices() {
	c.Home = app.NewHomeService(
		c.ProductRepo,
		c.DealRepo,
		c.SnapshotStore,
		c.LayoutRegistry,
		core.StorefrontID(c.Config.Feed.Storefront),
		c.Config.Feed.ShowcaseSize,
		c.Config.Feed.TrendingWindowDays,
		c.Logger,
	)
	c.Supplements = app.NewSupplementsService(c.SupplementRepo, c.ReminderRepo, c.IntakeRepo)
	c.Insights = app.NewInsightsService(c.SupplementRepo, c.ReminderRepo, c.IntakeRepo, c.Config.Insights.WindowDays)
	c.Import = app.NewImportService(c.ProductRepo, c.DealRepo)
}

// StartBackground starts the long-running components. Call after
// InitWithDatabase; Shutdown stops them.
func (c *Container) StartBackground(ctx context.Context) error {
	if c.LayoutWatcher != nil {
		if err := c.LayoutWatcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start layout watcher: %w", err)
		}
	}
	return nil
}

// EnsureDefaultUser gets or creates the single-user install's default
// account, which the migration also seeds
func (c *Container) EnsureDefaultUser(ctx context.Context) (*models.User, error) {
	user, err := c.UserRepo.EnsureDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure default user: %w", err)
	}
	c.Logger.Info("Default user ready", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.LayoutWatcher != nil {
		c.LayoutWatcher.Stop()
	}

	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
