// Package app initializes and orchestrates the main components of reply-warden.
// It ties together the configuration, the reply jobs, the scheduler and the
// HTTP server.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/reply-warden/internal/config"
	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/jobs"
	"github.com/sevigo/reply-warden/internal/metrics"
	"github.com/sevigo/reply-warden/internal/server"
)

// App holds the main application components. The exported fields are shared
// with the CLI, which runs jobs directly without starting the server.
type App struct {
	Cfg       *config.Config
	Store     core.ReviewStore
	Replier   core.ReplyRunner
	Scheduler *jobs.Scheduler
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	server *server.Server
}

// NewApp sets up the application with all its dependencies.
func NewApp(
	cfg *config.Config,
	store core.ReviewStore,
	replier *jobs.ReplyJob,
	scheduler *jobs.Scheduler,
	srv *server.Server,
	m *metrics.Metrics,
	logger *slog.Logger,
) *App {
	logger.Info("reply-warden initialized",
		"model", cfg.Generation.Model,
		"generation_enabled", cfg.Generation.Enabled(),
		"batch_limit", cfg.Batch.Limit,
		"batch_schedule", cfg.Batch.Schedule,
	)
	return &App{
		Cfg:       cfg,
		Store:     store,
		Replier:   replier,
		Scheduler: scheduler,
		Metrics:   m,
		Logger:    logger,
		server:    srv,
	}
}

// Start launches the batch scheduler and runs the HTTP server until it stops.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("starting reply-warden", "server_port", a.Cfg.Server.Port)

	a.Scheduler.Start(ctx)

	if err := a.server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.Logger.Info("shutting down reply-warden services")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	// Cancels any scheduled batch; it stops between items.
	a.Scheduler.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.Logger.Info("reply-warden stopped successfully")
	return nil
}
