package config

import (
	"os"
	"strconv"
	"time"

	"regimen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Preview  PreviewConfig
	Feed     FeedConfig
	Layout   LayoutConfig
	Snapshot SnapshotConfig
	Insights InsightsConfig
	Import   ImportConfig
	Debug    bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string `validate:"required"`
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds the public API server settings
type ServerConfig struct {
	Port string `validate:"required"`
}

// PreviewConfig holds the merchandiser preview server settings
type PreviewConfig struct {
	Port    string
	Enabled bool
	GinMode string
}

// FeedConfig holds home feed assembly settings
type FeedConfig struct {
	Storefront         string
	ShowcaseSize       int
	TrendingWindowDays int
}

// LayoutConfig holds section layout registry settings
type LayoutConfig struct {
	File  string
	Watch bool
}

// SnapshotConfig holds feed snapshot cache settings
type SnapshotConfig struct {
	Dir     string
	Enabled bool
}

// InsightsConfig holds adherence insight settings
type InsightsConfig struct {
	WindowDays int
}

// ImportConfig holds catalog import settings
type ImportConfig struct {
	WorkbookFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	// Load database configuration
	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	// Load server configuration
	serverConfig := loadServerConfig()
	config.Server = *serverConfig

	// Load preview server configuration
	previewConfig := loadPreviewConfig()
	config.Preview = *previewConfig

	// Load feed configuration
	feedConfig := loadFeedConfig()
	config.Feed = *feedConfig

	// Load layout configuration
	layoutConfig := loadLayoutConfig()
	config.Layout = *layoutConfig

	// Load snapshot configuration
	snapshotConfig := loadSnapshotConfig()
	config.Snapshot = *snapshotConfig

	// Load insights configuration
	insightsConfig := loadInsightsConfig()
	config.Insights = *insightsConfig

	// Load import configuration
	importConfig := loadImportConfig()
	config.Import = *importConfig

	config.Debug = getEnvBoolOrDefault("REGIMEN_DEBUG", false)

	// Validate required fields
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:             url,
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadPreviewConfig() *PreviewConfig {
	return &PreviewConfig{
		Port:    getEnvOrDefault("PREVIEW_PORT", "8081"),
		Enabled: getEnvBoolOrDefault("PREVIEW_ENABLED", true),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadFeedConfig() *FeedConfig {
	return &FeedConfig{
		Storefront:         getEnvOrDefault("STOREFRONT_ID", "default"),
		ShowcaseSize:       getEnvIntOrDefault("FEED_SHOWCASE_SIZE", 10),
		TrendingWindowDays: getEnvIntOrDefault("FEED_TRENDING_WINDOW_DAYS", 14),
	}
}

func loadLayoutConfig() *LayoutConfig {
	return &LayoutConfig{
		File:  getEnvOrDefault("LAYOUT_FILE", ""),
		Watch: getEnvBoolOrDefault("LAYOUT_WATCH", true),
	}
}

func loadSnapshotConfig() *SnapshotConfig {
	return &SnapshotConfig{
		Dir:     getEnvOrDefault("SNAPSHOT_DIR", "./data/snapshots"),
		Enabled: getEnvBoolOrDefault("SNAPSHOT_ENABLED", true),
	}
}

func loadInsightsConfig() *InsightsConfig {
	return &InsightsConfig{
		WindowDays: getEnvIntOrDefault("INSIGHTS_WINDOW_DAYS", 30),
	}
}

func loadImportConfig() *ImportConfig {
	return &ImportConfig{
		WorkbookFile: getEnvOrDefault("CATALOG_WORKBOOK", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Feed.ShowcaseSize <= 0 {
		return errors.ConfigInvalid("feed showcase size must be positive")
	}
	if config.Insights.WindowDays <= 0 {
		return errors.ConfigInvalid("insights window must be positive")
	}
	if config.Preview.Enabled && config.Preview.Port == config.Server.Port {
		return errors.ConfigInvalid("preview port must differ from server port")
	}
	if config.Snapshot.Enabled && config.Snapshot.Dir == "" {
		return errors.ConfigInvalid("snapshot directory is required when snapshots are enabled")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
