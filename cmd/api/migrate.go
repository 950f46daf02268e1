package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/roster-service/internal/app"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			store, err := app.OpenStore(cmd.Context(), cfg, logger, true)
			if err != nil {
				logger.Error("migration failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
				return err
			}
			store.Close()
			return nil
		},
	}
}
