package main

import (
	"technotes/internal/app"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if err := app.RunMigrations(cfg.PG.DSN); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}
