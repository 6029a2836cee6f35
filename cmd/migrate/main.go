package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ua-volunteer/volunteer-api/internal/config"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/database"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/logger"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the volunteer-api database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sqlx.DB) error {
			return database.MigrateUp(db)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back the given number of migrations (--steps, default 1).
Use --all to drop the whole schema.`,
	Args: cobra.NoArgs,
	RunE: runDown,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Mark VERSION as applied without running it (clears the dirty flag)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var version int
		if _, err := fmt.Sscanf(args[0], "%d", &version); err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migrate.Migrate) error {
			return m.Force(version)
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (defaults to DATABASE_URL)")

	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	downCmd.Flags().Bool("all", false, "Roll back every migration")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(forceCmd)
}

func runDown(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	all, _ := cmd.Flags().GetBool("all")
	if !all && steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	return withMigrator(func(m *migrate.Migrate) error {
		var err error
		if all {
			err = m.Down()
		} else {
			err = m.Steps(-steps)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("Nothing to roll back")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Bool("all", all).Int("steps", steps).Msg("Migrations rolled back")
		return nil
	})
}

func withDB(fn func(db *sqlx.DB) error) error {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		return err
	}

	url := databaseURL
	if url == "" {
		url = cfg.DatabaseURL
	}

	db, err := database.NewPostgres(url)
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	return fn(db)
}

func withMigrator(fn func(m *migrate.Migrate) error) error {
	return withDB(func(db *sqlx.DB) error {
		m, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		return fn(m)
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
