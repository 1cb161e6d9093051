package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quicknote/internal/notepad/server"
	"quicknote/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "quicknote service started"
	LogServiceShutdownDone = "quicknote service shutdown complete"
	ErrStartHTTPServer     = "failed to start HTTP server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local note API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		srv, err := server.New(ctx, cfg)
		if err != nil {
			return err
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage_driver", cfg.Storage.Driver),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		go func() {
			if err := srv.Listen(ctx); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				cancel()
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), srv.Shutdown)

		log.Info(ctx, LogServiceShutdownDone)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
