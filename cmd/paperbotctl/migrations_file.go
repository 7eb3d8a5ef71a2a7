//go:build !embed_migrations

package main

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Development builds read migrations straight from the working tree.
const migrationsPath = "db/migrations"

func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	fmt.Printf("Using migrations from file://%s\n", migrationsPath)
	return migrate.New("file://"+migrationsPath, dbURL)
}
