// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the fleet administration HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the token codec (aborts on a misconfigured key).
//  4. Connect to PostgreSQL (pgxpool).
//  5. Connect to Redis (one shared client).
//  6. Run database migrations (idempotent).
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

	"github.com/taibuivan/fleetadmin/internal/api"
	"github.com/taibuivan/fleetadmin/internal/platform/config"
	"github.com/taibuivan/fleetadmin/internal/platform/constants"
	"github.com/taibuivan/fleetadmin/internal/platform/migration"
	pgstore "github.com/taibuivan/fleetadmin/internal/platform/postgres"
	redisstore "github.com/taibuivan/fleetadmin/internal/platform/redis"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/platform/session"
	"github.com/taibuivan/fleetadmin/internal/users/account"
	"github.com/taibuivan/fleetadmin/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	logLevel := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String(constants.FieldVersion, constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// ── 3. Token Codec ────────────────────────────────────────────────────
	// A short or empty secret is sec.ErrKeyMisconfigured and stops the process here.
	codec, err := sec.NewTokenCodec(cfg.JWTSecret)
	must(log, err, "initialize token codec")

	// Root context: cancelled on shutdown so background workers stop.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.GlobalRequestTimeout)
	defer startupCancel()

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 5. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	revocationStore := session.NewRedisRevocationStore(rdb, sec.TokenLifetime)
	resolver := session.NewResolver(codec, revocationStore)

	authService := auth.NewService(userRepository, codec, resolver)
	accountService := account.NewService(account.NewAccountRepository(pool))

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	})

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Sessions:  resolver,
		Roles:     session.NewAuthorizer(userRepository),
	})

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// rendered through respond.Error.
func must(log *slog.Logger, err error, step string) {
	if err == nil {
		return
	}

	attrs := []any{slog.String("step", step), slog.Any("error", err)}
	if errors.Is(err, sec.ErrKeyMisconfigured) {
		attrs = append(attrs, slog.String("hint", "set JWT_SECRET to at least 32 random bytes"))
	}

	log.Error("startup_failure", attrs...)
	os.Exit(1)
}
