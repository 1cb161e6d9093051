package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quicknote/pkg/db/postgres"
)

// LogMigrationsApplied - сообщение об успешной миграции.
const LogMigrationsApplied = "postgres migrations applied"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply postgres migrations for the blob store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := postgres.MigrateDSN(ctx, cfg.Postgres.DSN, cfg.Postgres.MigrationsPath); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		log.Info(ctx, LogMigrationsApplied, zap.String("path", cfg.Postgres.MigrationsPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
