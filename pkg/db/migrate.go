package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Register file source driver
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// newMigrator opens a migration-scoped database connection and returns a
// migrate instance plus a cleanup function. The caller must invoke cleanup
// regardless of the migration outcome.
func newMigrator(databaseURL, migrationsPath, caCertPath string) (*migrate.Migrate, func(), error) {
	connConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Same CA material as the main connection pool.
	tlsConfig, err := configureTLS(databaseURL, caCertPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure TLS: %w", err)
	}
	if tlsConfig != nil {
		connConfig.TLSConfig = tlsConfig
	}

	db := stdlib.OpenDB(*connConfig)

	if pingErr := db.Ping(); pingErr != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	cleanup := func() {
		db.Close()
	}
	return m, cleanup, nil
}

// RunMigrations applies all pending migrations from the specified path
// (e.g., "file://./migrations"). ErrNoChange is not treated as a failure.
func RunMigrations(databaseURL, migrationsPath, caCertPath string) error {
	m, cleanup, err := newMigrator(databaseURL, migrationsPath, caCertPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// RollbackLastMigration reverts the most recently applied migration.
func RollbackLastMigration(databaseURL, migrationsPath, caCertPath string) error {
	m, cleanup, err := newMigrator(databaseURL, migrationsPath, caCertPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	return nil
}

// MigrationVersion reports the currently applied schema version and whether
// the database is in a dirty state.
func MigrationVersion(databaseURL, migrationsPath, caCertPath string) (uint, bool, error) {
	m, cleanup, err := newMigrator(databaseURL, migrationsPath, caCertPath)
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}

	return version, dirty, nil
}
