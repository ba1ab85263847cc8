// Package commands holds the yamdb command line: the API server and the
// database maintenance commands that run against the same configuration.
package commands

import (
	"fmt"
	"os"

	"github.com/deppfellow/yamdb/internal/config"
	"github.com/deppfellow/yamdb/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "yamdb",
	Short: "YaMDb - reviews and ratings API",
	Long: `YaMDb serves a REST API for reviews and ratings of titles
(films, books, music) grouped by category and genre.

Configuration is read from YAMDB_* environment variables and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd, importCmd)
}

// bootstrap loads config and builds the logger shared by every command.
// The caller must Shutdown the returned service.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}
