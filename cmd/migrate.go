package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qurancms/recitation-api/internal/database"
	"github.com/qurancms/recitation-api/internal/models"
	"github.com/qurancms/recitation-api/pkg/logger"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the recitation schema.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	RunE:  runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		return printMigrationStatus(out, db)
	}

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Schema is up to date")
	return printMigrationStatus(out, db)
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return printMigrationStatus(cmd.OutOrStdout(), db)
}

// printMigrationStatus lists every model table and whether it exists
func printMigrationStatus(out io.Writer, db *database.DB) error {
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	migrator := db.DB.Migrator()
	pending := 0
	for _, model := range models.All() {
		stmt := db.DB.Model(model).Statement
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parsing model: %w", err)
		}
		state := "applied"
		if !migrator.HasTable(model) {
			state = "pending"
			pending++
		}
		fmt.Fprintf(out, "  %-32s %s\n", stmt.Schema.Table, state)
	}

	fmt.Fprintf(out, "\n%d pending\n", pending)
	return nil
}
