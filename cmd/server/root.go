package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/config"
	"github.com/mamadbah2/prodtracker/pkg/logger"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "prodtracker",
		Short:        "Factory production tracking dashboard",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "path to a .env file (defaults to ./.env when present)")

	serveCmd := newServeCommand(a)
	rootCmd.AddCommand(serveCmd, newSeedCommand(a), newImportCommand(a))

	// Running the binary without a subcommand starts the server.
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

func (a *app) initialize() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	baseLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(baseLogger)

	a.cfg = cfg
	a.logger = baseLogger
	return nil
}
