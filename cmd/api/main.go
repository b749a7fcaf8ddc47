// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the ERApp HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and a local .env).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Load the embedded legal dataset used when the store is unavailable.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/erapp/internal/admin"
	"github.com/taibuivan/erapp/internal/api"
	"github.com/taibuivan/erapp/internal/emergency"
	"github.com/taibuivan/erapp/internal/legal"
	"github.com/taibuivan/erapp/internal/platform/config"
	"github.com/taibuivan/erapp/internal/platform/constants"
	"github.com/taibuivan/erapp/internal/platform/migration"
	pgstore "github.com/taibuivan/erapp/internal/platform/postgres"
	redisstore "github.com/taibuivan/erapp/internal/platform/redis"
	"github.com/taibuivan/erapp/internal/platform/sec"
	"github.com/taibuivan/erapp/internal/users/account"
	"github.com/taibuivan/erapp/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[ERApp] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifetime of background workers (rate limiter janitor).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Fallback Dataset ───────────────────────────────────────────────
	fallback, err := legal.BuiltinDataset()
	must(log, err, "load embedded legal dataset")
	log.Info("fallback_dataset_loaded", slog.Int("sections", len(fallback)))

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	corpus := legal.NewCorpus(
		legal.NewSectionRepository(pool),
		legal.NewSectionCache(rdb, cfg.CorpusCacheTTL),
		fallback,
		log,
	)
	ledger := legal.NewLedger(legal.NewTermRepository(pool), log)
	search := legal.NewSearchEngine(corpus, ledger, log)
	curation := legal.NewCuration(corpus, ledger, log)

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, jwtSvc, log)
	accountService := account.NewService(userRepository, log)
	adminService := admin.NewService(userRepository, ledger, corpus, log)

	directory := emergency.NewService(
		emergency.NewOverpassClient(cfg.OverpassURL, cfg.OverpassTimeout, log),
		emergency.NewFacilityCache(rdb, emergency.DefaultFacilityCacheTTL),
		log,
	)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Legal:     legal.NewHandler(corpus, ledger, search, curation),
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Admin:     admin.NewHandler(adminService),
		Emergency: emergency.NewHandler(directory),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger returns the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors must be
// returned and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
