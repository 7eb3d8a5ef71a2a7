package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply pending schema migrations.

Runs all pending migrations from db/migrations, or from the embedded
copy in production builds. The server also does this on boot unless
started with --no-migrate.

Example:
  paperbotctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fmt.Fprintln(os.Stderr, "Migration failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back database migrations",
	Long: `Roll back the given number of migrations, one when no count is given.

Example:
  paperbotctl db down
  paperbotctl db down 2`,
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "invalid step count %q\n", args[0])
				os.Exit(1)
			}
			steps = n
		}

		if err := rollbackMigrations(steps); err != nil {
			fmt.Fprintln(os.Stderr, "Rollback failed:", err)
			os.Exit(1)
		}
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current migration version",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printMigrationStatus(); err != nil {
			fmt.Fprintln(os.Stderr, "Cannot read migration status:", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbStatusCmd)
}

// openMigrate builds a migrate instance against DATABASE_URL using the
// source selected at build time (working tree or embedded copy).
func openMigrate() (*migrate.Migrate, error) {
	dbURL := db.URL()
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return createMigrateInstance(dbURL)
}

// runMigrations brings the schema up to date. The server command calls
// this on boot as well.
func runMigrations() error {
	m, err := openMigrate()
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			fmt.Println("Database schema is up to date")
			return nil
		}
		return err
	}

	version, _, _ := m.Version()
	fmt.Printf("Migrated to version %d\n", version)
	return nil
}

func rollbackMigrations(steps int) error {
	m, err := openMigrate()
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	fmt.Printf("Rolling back %d migration(s)\n", steps)
	if err := m.Steps(-steps); err != nil {
		return err
	}

	version, _, err := m.Version()
	if err == migrate.ErrNilVersion {
		fmt.Println("Rolled back to an empty schema")
		return nil
	}
	fmt.Printf("Rolled back to version %d\n", version)
	return nil
}

func printMigrationStatus() error {
	m, err := openMigrate()
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if err == migrate.ErrNilVersion {
		fmt.Println("No migrations have been applied yet")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Current version: %d\n", version)
	if dirty {
		fmt.Println("Warning: the last migration did not finish cleanly")
	}
	return nil
}
