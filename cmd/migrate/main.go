package main

import (
	"fmt"
	"os"

	"github.com/lessonforge/lessonforge-api/config"
	"github.com/lessonforge/lessonforge-api/pkg/db"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"go.uber.org/zap"
)

const migrationsPath = "file://migrations"

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "up":
		logger.Info("Applying database migrations",
			zap.String("database", maskDatabaseURL(cfg.Database.URL)))
		if err := db.RunMigrations(cfg.Database.URL, migrationsPath, cfg.Database.CACertPath); err != nil {
			logger.Error("Failed to run migrations", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Database migrations completed successfully")

	case "down":
		logger.Info("Rolling back last migration",
			zap.String("database", maskDatabaseURL(cfg.Database.URL)))
		if err := db.RollbackLastMigration(cfg.Database.URL, migrationsPath, cfg.Database.CACertPath); err != nil {
			logger.Error("Failed to rollback migration", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Rollback completed successfully")

	case "version":
		version, dirty, err := db.MigrationVersion(cfg.Database.URL, migrationsPath, cfg.Database.CACertPath)
		if err != nil {
			logger.Error("Failed to read migration version", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q (expected up, down, or version)\n", command)
		os.Exit(1)
	}
}

// maskDatabaseURL masks the password in database URL for logging
func maskDatabaseURL(url string) string {
	// Simple masking - just show we're connecting without revealing password
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
