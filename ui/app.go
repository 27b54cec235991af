package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"regimen/domain/core"
	"regimen/internal/container"
)

// App is the public JSON API consumed by the mobile shopping apps
type App struct {
	router        *chi.Mux
	container     *container.Container
	logger        *zap.Logger
	defaultUserID core.UserID
}

// NewApp creates the API application on top of an initialized container.
// defaultUserID is the account requests fall back to when no X-User-ID
// header is sent; this is a single-user install by default.
func NewApp(c *container.Container, defaultUserID core.UserID) (*App, error) {
	if c == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	app := &App{
		router:        chi.NewRouter(),
		container:     c,
		logger:        c.Logger,
		defaultUserID: defaultUserID,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Use(a.userContext)

		// Home feed
		r.Get("/home", a.handleHome)
		r.Get("/sections", a.handleSections)
		r.Get("/navigate", a.handleNavigate)

		// Supplement tracking
		r.Get("/supplements", a.handleShelf)
		r.Post("/supplements", a.handleAddSupplement)
		r.Delete("/supplements/{id}", a.handleArchiveSupplement)
		r.Get("/supplements/insights", a.handleInsights)
		r.Post("/reminders", a.handleAddReminder)
		r.Delete("/reminders/{id}", a.handleRemoveReminder)
		r.Post("/intakes", a.handleLogIntake)
	})
}

// Router exposes the http handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.logger.Info("Starting API server", zap.String("addr", addr))
	return http.ListenAndServe(addr, a.router)
}
