package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/speeddial/internal/config"
	grpcserver "github.com/ekisa-team/speeddial/internal/server/grpc"
	httpserver "github.com/ekisa-team/speeddial/internal/server/http"
	"github.com/ekisa-team/speeddial/internal/service"
)

const shutdownTimeout = 10 * time.Second

var (
	serveHTTPPort int
	serveGRPCPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long: `Start the HTTP (REST + SSE) and gRPC servers over one registry.

The config file is watched. Dialer and log level changes apply immediately,
changes to the registry layout need a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, fmt.Sprintf("HTTP port (default: config or %d)", config.DefaultHTTPPort()))
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, fmt.Sprintf("gRPC port (default: config or %d)", config.DefaultGRPCPort()))
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := configPath()
	cfg, found, err := loadConfig(path)
	if err != nil {
		printError("failed to load config", err)
		return err
	}

	log, level := newLogger(cfg, true)
	if !found {
		log.Warn("Config file not found, using defaults", "path", path)
	}

	svc, err := service.NewFromConfig(cfg, log)
	if err != nil {
		log.Error("Failed to create service", "error", err)
		return err
	}
	defer svc.Close()

	if found {
		watcher, err := config.NewWatcher(path, schemaFile, onReload(svc, cfg, level, log))
		if err != nil {
			log.Error("Failed to create config watcher", "error", err)
			return err
		}
		defer watcher.Close()
	}

	if serveHTTPPort != 0 {
		cfg.Server.HTTPPort = serveHTTPPort
	}
	if serveGRPCPort != 0 {
		cfg.Server.GRPCPort = serveGRPCPort
	}

	httpSrv := httpserver.NewServer(svc, cfg.Server.HTTPPort)
	grpcSrv := grpcserver.NewServer(svc, cfg.Server.GRPCPort)

	errs := make(chan error, 2)
	go func() { errs <- httpSrv.ListenAndServe() }()
	go func() { errs <- grpcSrv.ListenAndServe() }()

	log.Info("Speed dial server started",
		"config", path,
		"http_port", cfg.Server.HTTPPort,
		"grpc_port", cfg.Server.GRPCPort,
		"driver", svc.Driver(),
	)

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case serveErr = <-errs:
		log.Error("Server stopped", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcSrv.Stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		serveErr = errors.Join(serveErr, err)
	}

	return serveErr
}

// onReload applies the runtime-adjustable parts of a reloaded config.
func onReload(svc *service.SpeedDial, initial *config.Config, level *slog.LevelVar, log *slog.Logger) func(*config.Config, error) {
	return func(cfg *config.Config, err error) {
		if err != nil {
			log.Error("Failed to reload config", "error", err)
			return
		}

		setLevel(level, cfg.Log.Level)

		if err := svc.ApplyDialerConfig(cfg.Dialer); err != nil {
			log.Error("Failed to apply dialer config", "error", err)
		}

		if initial.RegistryChanged(cfg) {
			log.Warn("Registry layout changed, restart to apply")
		}

		log.Info("Config reloaded", "driver", svc.Driver(), "level", level.Level())
	}
}
