package db

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"resione-server/internal/pkg/config"
)

// Migrate applies pending schema migrations from migrationsPath, e.g.
// "file://migrations". Already-applied migrations are a no-op.
func Migrate(migrationsPath string, cfg config.DBConfig) error {
	m, err := migrate.New(migrationsPath, cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(migrationsPath string, cfg config.DBConfig) error {
	m, err := migrate.New(migrationsPath, cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}
