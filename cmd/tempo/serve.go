package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/project-tempo/internal/availability"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	corecfg "github.com/aevon-lab/project-tempo/internal/core/config"
	"github.com/aevon-lab/project-tempo/internal/core/mutation"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
	"github.com/aevon-lab/project-tempo/internal/core/storage/memory"
	"github.com/aevon-lab/project-tempo/internal/core/storage/postgres"
	"github.com/aevon-lab/project-tempo/internal/event"
	"github.com/aevon-lab/project-tempo/internal/migrations"
	"github.com/aevon-lab/project-tempo/internal/seed"
	"github.com/aevon-lab/project-tempo/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *corecfg.Config) error {
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"horizon_days", cfg.Engine.ValidationHorizonDays,
		"worker_count", cfg.Engine.WorkerCount)

	// 1. Storage
	store, err := openStore(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	// 2. Reference data
	if cfg.Seed.Path != "" {
		f, err := seed.Load(cfg.Seed.Path)
		if err != nil {
			return err
		}
		if err := f.Apply(ctx, store); err != nil {
			return fmt.Errorf("failed to apply seed data: %w", err)
		}
	}

	// 3. Engine and services
	if err := v1.RegisterValidations(); err != nil {
		return err
	}
	expander := recurrence.NewExpander(cfg.Engine.MaxOccurrences)
	materializer := recurrence.NewMaterializer(expander)
	mutator := mutation.NewMutator(expander)

	availabilitySvc := availability.NewService(store, materializer, mutator, availability.Options{
		HorizonDays:  cfg.Engine.ValidationHorizonDays,
		MaxQueryDays: cfg.Engine.MaxQueryDays,
		WorkerCount:  cfg.Engine.WorkerCount,
	})
	eventSvc := event.NewService(store, availabilitySvc, materializer, mutator)

	// 4. Server
	opts := server.Options{Mode: cfg.Server.Mode, MaxBodySizeMB: cfg.Server.MaxBodySizeMB}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	srv := server.New(cfg.Server.Addr(), store, opts)
	srv.Register(availabilitySvc, eventSvc)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

func openStore(cfg corecfg.DatabaseConfig) (storage.Store, error) {
	if cfg.Type == "memory" {
		slog.Warn("[Storage] Using in-memory store; data is lost on exit")
		return memory.NewStore(), nil
	}

	if !cfg.AutoMigrate {
		adapter, err := postgres.NewAdapter(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return adapter, nil
	}

	db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := migrations.RunMigrations(db, true); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	adapter := postgres.NewAdapterFromDB(db)
	if err := adapter.VerifySchema(); err != nil {
		adapter.Close()
		return nil, err
	}
	return adapter, nil
}
