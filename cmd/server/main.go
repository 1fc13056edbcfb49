package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"enricher/internal/enrichment"
	"enricher/internal/enrichment/handler"
	"enricher/internal/platform/config"
	"enricher/internal/platform/httpserver"
	"enricher/internal/platform/logger"
	"enricher/internal/platform/metrics"
	"enricher/pkg/platform/middleware/admin"
	"enricher/pkg/platform/middleware/metadata"
	"enricher/pkg/platform/middleware/request"
	"enricher/pkg/platform/middleware/requesttime"
)

// main wires configuration, the enrichment engine and the HTTP router, then
// serves until SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New("error", "json").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *slog.Logger) error {
	m := metrics.New()
	engine, err := enrichment.NewEngine(cfg, log, m.Registry)
	if err != nil {
		return fmt.Errorf("build enrichment engine: %w", err)
	}
	if engine.Registry.Len() == 0 {
		log.Warn("no provider API keys configured; every response will be synthetic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg.Server.Addr, newRouter(cfg, log, m, engine))
	return httpserver.Run(ctx, srv, log, cfg.Server.ShutdownTimeout)
}

func newRouter(cfg config.Config, log *slog.Logger, m *metrics.Metrics, engine *enrichment.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(metadata.AccessLog(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(m.Middleware)

	r.Handle("/metrics", m.Handler())

	h := handler.New(engine, engine.Quota, log)
	h.Register(r)
	if cfg.Server.AdminToken != "" {
		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(cfg.Server.AdminToken, log))
			h.RegisterAdmin(r)
		})
	}
	return r
}
