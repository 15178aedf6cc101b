package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/crisk221/jm-peak-performance-sub000/internal/server"
	"github.com/crisk221/jm-peak-performance-sub000/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var serverConfigPath, address, maxUploadSize string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the targets and meal plan HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if maxUploadSize != "" {
				size, err := server.ParseSize(maxUploadSize)
				if err != nil {
					return err
				}
				cfg.SetUploadSizeBytes(size)
			}

			logger, err := initializeLogger(cfg.Logging, opts.logLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			catalog, err := server.LoadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer cancel()

			srv := &http.Server{
				Addr:              cfg.Address,
				Handler:           server.NewHandler(logger, cfg.UploadSizeBytes(), Version, catalog),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				logger.Info("server starting",
					zap.String("op", "main"),
					zap.String("address", cfg.Address),
					zap.Int("recipes", len(catalog)),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", zap.String("op", "main"), zap.Error(err))
					cancel()
				}
			}()

			<-ctx.Done()
			logger.Info("shutdown initiated", zap.String("op", "main"))

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "maximum request body size override (e.g. 256K)")
	return cmd
}
