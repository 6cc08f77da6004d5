// Package cmd contains the command-line interface of sqltojson.
//
// This file loads the run configuration from flags, environment and config
// file, and provides withDB for commands that only need a live connection.
package cmd

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tannerpace/sqltojson/config"
	"github.com/tannerpace/sqltojson/dbexport"
	"github.com/tannerpace/sqltojson/logger"
)

// connect is a package-level variable to allow test injection.
var connect = dbexport.Open

// loadConfig merges command-line flags over environment, .env and the
// optional YAML file.
func loadConfig() (config.Config, error) {
	return config.Load(config.LoadOptions{
		File: flagConfig,
		Flags: config.Config{
			Host:       flagHost,
			Port:       flagPort,
			User:       flagUser,
			Password:   flagPassword,
			Database:   flagDatabase,
			ExportMode: config.ExportMode(flagMode),
			OutputDir:  flagOut,
			GoTypes:    flagGoTypes,
			GoPackage:  flagGoPackage,
			Mirror:     flagMirror,
		},
	})
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  flagLogLevel,
		Format: flagLogFormat,
		Output: cmd.ErrOrStderr(),
	})
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// withDB validates the configuration, opens the connection, calls fn and
// closes the connection again.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()

	db, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log := newLogger(cmd)
	log.Debug().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connected to MySQL")
	return fn(ctx, db)
}
