package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloksy/cloksy-backend/pkg/config"
	"github.com/cloksy/cloksy-backend/pkg/database"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

const appName = "cloksyctl"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Cloksy operator CLI",
	Long: `cloksyctl talks to the Cloksy database directly. It reads the same
configuration as timesheet-service (CLOKSY_* environment variables or
config/cloksyctl.yaml).`,
	SilenceUsage: true,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// env is what every command needs: config, a stderr logger and a connection pool
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *database.DB
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(appName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Nop()
	if verbose {
		log = logger.NewWithWriter(appName, os.Stderr)
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) Close() {
	e.db.Close()
}
