package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/arlearn/assessment-api/internal/config"
	"github.com/arlearn/assessment-api/internal/service"
	"github.com/arlearn/assessment-api/pkg/database"
)

func newRootCmd() *cobra.Command {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Schema migrations and sample data for the assessment API",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", configPath, "path to YAML config")

	cmd.AddCommand(
		newUpCmd(&configPath),
		newDownCmd(&configPath),
		newForceCmd(&configPath),
		newVersionCmd(&configPath),
		newSeedCmd(&configPath),
	)
	return cmd
}

func newUpCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(m *migrateV4.Migrate) error {
				if err := m.Up(); err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
					return err
				}
				log.Println("[Migrate] up: done")
				return nil
			})
		},
	}
}

func newDownCmd(configPath *string) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (one step by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(m *migrateV4.Migrate) error {
				if err := m.Steps(-steps); err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
					return err
				}
				log.Printf("[Migrate] down: rolled back %d step(s)", steps)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newForceCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(*configPath, func(m *migrateV4.Migrate) error {
				if err := m.Force(version); err != nil {
					return err
				}
				log.Printf("[Migrate] forced version %d", version)
				return nil
			})
		},
	}
}

func newVersionCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(m *migrateV4.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrateV4.ErrNilVersion) {
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
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample subjects, models and questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), logger.Warn)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			msg, err := service.NewSeedService(db).SeedSampleData(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func withMigrator(configPath string, fn func(m *migrateV4.Migrate) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.Database.MigrationsPath)
	if err != nil {
		return err
	}
	return fn(m)
}
