package main

import (
	"log/slog"
	"os"

	corecfg "github.com/aevon-lab/project-tempo/internal/core/config"
	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Venue availability and recurring event placement service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "tempo.yaml", "Path to configuration file")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newExpandCmd())
	return root
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads --config, tolerating a missing default file so that env-only
// deployments work.
func loadConfig(cmd *cobra.Command) (*corecfg.Config, error) {
	path := configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	cfg, err := corecfg.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
