package cmd

import (
	"fmt"
	"strconv"

	"coinbot/config"
	"coinbot/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}
			return nil
		},
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := database.MigrateUp(config.Get().GetDatabaseURL()); err != nil {
					return err
				}
				color.Green("✓ Database is up to date")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid steps value %q: %w", args[0], err)
					}
					steps = n
				}
				if err := database.MigrateDown(config.Get().GetDatabaseURL(), steps); err != nil {
					return err
				}
				color.Yellow("↩ Rolled back %d migration(s)", steps)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				status, err := database.MigrateStatus(config.Get().GetDatabaseURL())
				if err != nil {
					return err
				}
				printMigrationStatus(status)
				return nil
			},
		},
	)

	return migrateCmd
}

func printMigrationStatus(status *database.MigrationStatus) {
	switch {
	case !status.Applied:
		color.Yellow("No migrations applied")
	case status.Dirty:
		color.Red("Version %d (dirty, fix manually before migrating again)", status.Version)
	default:
		color.Green("Version %d", status.Version)
	}
}
