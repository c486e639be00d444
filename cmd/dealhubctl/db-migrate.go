package main

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/dealhub/dealhub/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending database migrations to bring the schema
up to date. Migrations are located in the db/migrations directory.

Example:
  dealhubctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fmt.Println("Migration failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  dealhubctl db down      # Rollback 1 migration
  dealhubctl db down 3    # Rollback 3 migrations`,
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			_, _ = fmt.Sscanf(args[0], "%d", &steps)
		}

		if err := runMigrationsDown(steps); err != nil {
			fmt.Println("Rollback failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version and the known migration files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(); err != nil {
			fmt.Println("Failed to get status:", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
}

func getDatabaseURL() string {
	return db.URL()
}

func runMigrations() error {
	dbURL := getDatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	m, err := createMigrateInstance(dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, _ := m.Version()
	fmt.Printf("Current version: %d (dirty: %v)\n", version, dirty)

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			fmt.Println("No migrations to run - database is up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	newVersion, _, _ := m.Version()
	fmt.Printf("Migrated to version: %d\n", newVersion)

	fmt.Println("Migrations complete")
	return nil
}

func runMigrationsDown(steps int) error {
	dbURL := getDatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	m, err := createMigrateInstance(dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	fmt.Printf("Rolling back %d migration(s)...\n", steps)

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	version, _, _ := m.Version()
	fmt.Printf("Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus() error {
	dbURL := getDatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	m, err := createMigrateInstance(dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		if err == migrate.ErrNilVersion {
			fmt.Println("No migrations have been applied yet")
		} else {
			return err
		}
	} else {
		fmt.Printf("Current version: %d\n", version)
		if dirty {
			fmt.Println("Warning: Database is in a dirty state")
		}
	}

	files, err := listMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	fmt.Println("Known migrations:")
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
