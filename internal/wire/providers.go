// Package wire assembles the application's dependency graph.
package wire

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/jmoiron/sqlx"

	"github.com/sevigo/reply-warden/internal/app"
	"github.com/sevigo/reply-warden/internal/config"
	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/internal/db"
	"github.com/sevigo/reply-warden/internal/jobs"
	"github.com/sevigo/reply-warden/internal/llm"
	"github.com/sevigo/reply-warden/internal/logger"
	"github.com/sevigo/reply-warden/internal/metrics"
	"github.com/sevigo/reply-warden/internal/responder"
	"github.com/sevigo/reply-warden/internal/server"
	"github.com/sevigo/reply-warden/internal/server/handler"
	"github.com/sevigo/reply-warden/internal/storage"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	config.NewSettingsProvider,
	db.NewDatabase,
	storage.NewStore,
	metrics.New,
	llm.NewPromptManager,
	llm.NewGenerator,
	responder.NewComposer,
	jobs.NewReplyJob,
	provideLogger,
	provideDBConfig,
	provideSQLX,
	provideVoiceConfig,
	provideClassifier,
	provideFallbackEngine,
	provideGenerationHTTPClient,
	provideBatchJob,
	provideScheduler,
	provideReplyHandler,
)

func provideLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	w, closeWriter, err := logger.NewWriter(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger.NewLogger(cfg.Logging, w), closeWriter, nil
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideSQLX(conn *db.DB) *sqlx.DB {
	return conn.DB
}

// provideVoiceConfig loads the voice file once for the classifier and fallback
// templates. The brand voice itself is re-read per request by the settings
// provider.
func provideVoiceConfig(cfg *config.Config, logger *slog.Logger) (*config.VoiceConfig, error) {
	voice, err := config.LoadVoiceConfig(cfg.VoiceConfigPath)
	if errors.Is(err, config.ErrVoiceConfigNotFound) {
		if cfg.VoiceConfigPath != "" {
			logger.Warn("voice config not found, using defaults", "path", cfg.VoiceConfigPath)
		}
		return voice, nil
	}
	return voice, err
}

func provideClassifier(voice *config.VoiceConfig) *responder.Classifier {
	return responder.NewClassifier(voice.NegativeKeywords)
}

func provideFallbackEngine(voice *config.VoiceConfig) (*responder.FallbackEngine, error) {
	return responder.NewFallbackEngine(voice.Fallback)
}

// provideGenerationHTTPClient returns the transport shared by all generation
// calls. Per-request deadlines come from the generation timeout setting.
func provideGenerationHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        20,
			MaxConnsPerHost:     4,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func provideBatchJob(cfg *config.Config, store core.ReviewStore, composer core.ReplyComposer, settings core.SettingsProvider, m *metrics.Metrics, logger *slog.Logger) *jobs.BatchJob {
	return jobs.NewBatchJob(store, composer, settings, cfg.Batch.Limit, m, logger)
}

func provideScheduler(cfg *config.Config, batch *jobs.BatchJob, logger *slog.Logger) (*jobs.Scheduler, error) {
	return jobs.NewScheduler(batch, cfg.Batch.Schedule, cfg.Actor, logger)
}

func provideReplyHandler(cfg *config.Config, replier *jobs.ReplyJob, scheduler *jobs.Scheduler, logger *slog.Logger) *handler.ReplyHandler {
	return handler.NewReplyHandler(replier, scheduler, cfg.Actor, jobs.ErrBatchRunning, logger)
}
