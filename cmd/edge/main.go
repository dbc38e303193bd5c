// Command edge serves the hireflow frontend behind a route guard and proxies
// /api to the backend on the same origin.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/hireflow/internal/config"
	"github.com/dmitrymomot/hireflow/internal/edge"
	"github.com/dmitrymomot/hireflow/internal/server"
	"github.com/dmitrymomot/hireflow/middlewares"
	"github.com/dmitrymomot/hireflow/pkg/logger"
	"github.com/dmitrymomot/hireflow/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("edge stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[config.Edge]()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor(), middlewares.TenantExtractor()).
		With(slog.String("app", "edge"))
	defer logger.Flush(2 * time.Second)

	edgeOpts := []edge.Option{edge.WithLogger(log)}
	runOpts := []server.Option{
		server.WithAddress(cfg.Addr),
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	}

	if cfg.RedisURL != "" {
		client, err := redis.Open(context.Background(), cfg.RedisURL)
		if err != nil {
			return err
		}
		edgeOpts = append(edgeOpts, edge.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, server.WithShutdownHook(redis.Shutdown(client)))
	}

	handler, err := edge.New(cfg, edgeOpts...)
	if err != nil {
		return err
	}

	log.Info("edge configured",
		slog.String("backend", cfg.BackendURL),
		slog.String("frontend", cfg.FrontendURL),
		slog.String("static_dir", cfg.StaticDir),
		slog.String("base_domain", cfg.BaseDomain),
		slog.Bool("verify_tokens", cfg.JWTSecret != ""))

	return server.Run(handler, runOpts...)
}
