package main

import (
	"database/sql"
	"fmt"

	corecfg "github.com/aevon-lab/project-tempo/internal/core/config"
	"github.com/aevon-lab/project-tempo/internal/core/storage/postgres"
	"github.com/aevon-lab/project-tempo/internal/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(db *sql.DB) error {
				return migrations.RunMigrations(db, true)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(db *sql.DB) error {
				return migrations.Rollback(db, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(db *sql.DB) error {
				v, dirty, err := migrations.Version(db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withDB(cmd *cobra.Command, fn func(db *sql.DB) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return withConfiguredDB(cfg.Database, fn)
}

func withConfiguredDB(cfg corecfg.DatabaseConfig, fn func(db *sql.DB) error) error {
	if cfg.Type != "postgres" {
		return fmt.Errorf("migrations require database.type postgres, got %q", cfg.Type)
	}
	db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
