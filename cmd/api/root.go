package main

import (
	"os"

	"technotes/internal/config"
	"technotes/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "technotes",
	Short:        "Notes and users API",
	Long:         "technotes serves the notes/users REST API and ships a caching client for it.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(usersCmd)
}

// loadConfig reads the environment and builds the root logger from it.
func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.App.Env, cfg.Log.Level, os.Stdout), nil
}
