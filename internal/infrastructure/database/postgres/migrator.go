// Package postgres provides the pgx-backed connection pool and golang-migrate
// schema management.  The repositories built on it live in the repositories
// subpackage.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// source
)

// sourceURL accepts either a bare directory ("migrations") or a full source
// URL ("file://migrations") and returns the form golang-migrate expects.
// The config's migration path is a plain directory.
func sourceURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

func newMigrator(dbURL, migrationsPath string) (*migrate.Migrate, error) {
	m, err := migrate.New(sourceURL(migrationsPath), dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending schema migration.  An already
// up-to-date schema is not an error, so it is safe to run on every deploy
// before the apiserver or worker starts taking traffic.
func RunMigrations(dbURL string, migrationsPath string) error {
	m, err := newMigrator(dbURL, migrationsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration reverts the schema by the given number of steps.
// Intended for development databases; rolling back the alerta dedup index
// or the ingestion_events table on a live system loses data.
func RollbackMigration(dbURL string, migrationsPath string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be greater than 0, got %d", steps)
	}

	m, err := newMigrator(dbURL, migrationsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("no migrations to roll back")
		}
		return fmt.Errorf("failed to roll back %d step(s): %w", steps, err)
	}
	return nil
}

// MigrationStatus reports the applied schema version and whether a failed
// migration left the schema dirty.  A fresh database reports version 0.
func MigrationStatus(dbURL string, migrationsPath string) (version uint, dirty bool, err error) {
	m, err := newMigrator(dbURL, migrationsPath)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// ForceMigrationVersion overwrites the recorded schema version without
// running anything.  It exists to clear a dirty flag after a failed
// migration has been repaired by hand.
func ForceMigrationVersion(dbURL string, migrationsPath string, version int) error {
	m, err := newMigrator(dbURL, migrationsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

//Personal.AI order the ending
