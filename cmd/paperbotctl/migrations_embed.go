//go:build embed_migrations

package main

import (
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/arxivtools/paperbot/db"
)

// Production builds carry the migrations inside the binary.
func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	fmt.Println("Using embedded migrations")

	migrationsFS, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs source: %w", err)
	}

	return migrate.NewWithSourceInstance("iofs", src, dbURL)
}
