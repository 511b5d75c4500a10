package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tbakken/delelager/internal/config"
	"github.com/tbakken/delelager/internal/db"
	api "github.com/tbakken/delelager/internal/http"
	"github.com/tbakken/delelager/internal/http/handlers"
	"github.com/tbakken/delelager/internal/http/ratelimit"
	"github.com/tbakken/delelager/internal/logging"
	"github.com/tbakken/delelager/internal/repo"
	"github.com/tbakken/delelager/internal/seed"
	"github.com/tbakken/delelager/internal/service"
	"github.com/tbakken/delelager/internal/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logging.New(cfg.App.Env, cfg.Log.Level)
	log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("starting")

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("could not open database")
	}
	defer database.Close()

	itemRepo := repo.NewSQLiteItemRepository(database)
	auditRepo := repo.NewSQLiteAuditRepository(database)
	txRunner := repo.NewSQLiteTxRunner(database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.Path != "" {
		if err := seed.Run(ctx, cfg.Seed.Path, itemRepo, log); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Seed.Path).Msg("csv seed failed")
		}
	}

	hub := sse.NewHub(log)
	svc := service.NewInventoryService(itemRepo, auditRepo, txRunner, hub, log)

	handlers.SetInventoryService(svc)
	handlers.SetHub(hub)
	handlers.SetLogger(log)

	ratelimit.Configure(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	go ratelimit.StartVisitorCleanupLoop()

	// No WriteTimeout: /api/updates holds connections open indefinitely.
	srv := &http.Server{
		Addr:        cfg.HTTP.Addr(),
		Handler:     api.NewRouter(log),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
