// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/signintriage/internal/api"
	"github.com/tomtom215/signintriage/internal/config"
	"github.com/tomtom215/signintriage/internal/logging"
	"github.com/tomtom215/signintriage/internal/supervisor"
	"github.com/tomtom215/signintriage/internal/supervisor/services"
)

// version is set at build time: -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; config not yet available.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "signintriage",
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Int("default_threshold", cfg.Triage.DefaultThreshold).
		Int64("max_upload_bytes", cfg.Triage.MaxUploadBytes).
		Msg("Starting signin triage server")

	logSecurityWarnings(cfg)

	notifiers := buildNotifiers(&cfg.Notify)
	handler := api.NewHandler(cfg.Triage, notifiers, version)
	if n := len(notifiers); n > 0 {
		logging.Info().Int("notifiers", n).Msg("Batch notifications enabled")
	}

	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, treeConfig.ShutdownTimeout,
		services.WithDrain(handler.WaitNotifications)))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if path := config.ConfigFilePath(); path != "" {
		tree.AddControlService(services.NewConfigWatchService(config.NewConfigWatcher(path), reloadConfig))
		logging.Info().Str("path", path).Msg("Watching config file for log level changes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	handler.SetReady(true)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	handler.SetReady(false)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}

// reloadConfig applies the settings that can change without a restart.
func reloadConfig() {
	cfg, err := config.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("Config reload failed, keeping current settings")
		return
	}
	logging.SetLevelString(cfg.Logging.Level)
	logging.Info().Str("level", cfg.Logging.Level).Msg("Config reloaded")
}

func logSecurityWarnings(cfg *config.Config) {
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Upload rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: CORS is configured with wildcard origin (CORS_ORIGINS=*)")
		logging.Warn().Msg("  Any website can submit sign-in data to this server and read the alerts.")
		logging.Warn().Msg("  RECOMMENDED: CORS_ORIGINS=https://soc.example.com")
		logging.Warn().Msg("============================================================")
	}
}
