package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"regimen/domain/core"
	"regimen/internal/config"
	"regimen/internal/container"
	"regimen/internal/errors"
	"regimen/internal/migration"
	"regimen/ui"
)

// initDatabase opens the PostgreSQL pool and brings the schema current
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(appConfig.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := initDatabase(appConfig)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		logger.Fatal("Failed to create application container", zap.Error(err))
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.InitWithDatabase(db); err != nil {
		logger.Fatal("Failed to initialize container", zap.Error(err))
	}

	defaultUser, err := appContainer.EnsureDefaultUser(context.Background())
	if err != nil {
		logger.Fatal("Failed to ensure default user", zap.Error(err))
	}

	if err := appContainer.StartBackground(context.Background()); err != nil {
		logger.Fatal("Failed to start background components", zap.Error(err))
	}

	apiApp, err := ui.NewApp(appContainer, core.UserID(defaultUser.ID.String()))
	if err != nil {
		logger.Fatal("Failed to create API server", zap.Error(err))
	}

	if appConfig.Preview.Enabled {
		preview, err := ui.NewPreviewServer(appContainer)
		if err != nil {
			logger.Fatal("Failed to create preview server", zap.Error(err))
		}
		go func() {
			if err := preview.Start(":" + appConfig.Preview.Port); err != nil {
				logger.Error("Preview server stopped", zap.Error(err))
			}
		}()
	}

	logger.Fatal("API server stopped", zap.Error(apiApp.Start(":"+appConfig.Server.Port)))
}
