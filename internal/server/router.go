package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/reply-warden/internal/config"
	"github.com/sevigo/reply-warden/internal/metrics"
	"github.com/sevigo/reply-warden/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, replies *handler.ReplyHandler, m *metrics.Metrics, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireToken(cfg.Server.AdminToken))
		r.Post("/reviews/{reviewID}/reply", replies.ReplyToReview)
		r.Post("/replies/batch", replies.RunBatch)
	})

	if cfg.Server.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is not set, reply endpoints are unauthenticated")
	}
	return r
}
