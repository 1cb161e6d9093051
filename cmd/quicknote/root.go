package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quicknote/internal/notepad/config"
	"quicknote/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

var (
	configPath string
	cfg        *config.Config
	log        *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "quicknote",
	Short:         "Local note pad with export to Notion",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		bootstrap, err := logger.NewLogger(logger.Development, "info")
		if err != nil {
			return fmt.Errorf("%s: %w", ErrInitLogger, err)
		}
		logger.SetGlobalLogger(bootstrap)

		ctx := logger.NewRequestIDContext(cmd.Context(), "")
		loaded, err := config.Load(ctx, configPath)
		if err != nil {
			return err
		}

		final, err := logger.NewLogger(loaded.Logging.GetEnvironment(), loaded.Logging.Level)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
		}
		logger.SetGlobalLogger(final)

		cfg = loaded
		log = final
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		syncLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a yaml or .env configuration file (environment variables take precedence)")
}

// Execute запускает CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func syncLogger() {
	if log == nil {
		return
	}
	if err := log.Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
	}
}
