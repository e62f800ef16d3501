// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/fleetadmin/internal/platform/config"
	"github.com/taibuivan/fleetadmin/internal/platform/constants"
	"github.com/taibuivan/fleetadmin/internal/platform/middleware"
	"github.com/taibuivan/fleetadmin/internal/platform/respond"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/users/account"
	"github.com/taibuivan/fleetadmin/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup, login and logout.
	Auth *auth.Handler

	// Account handles "me" and the admin user listing.
	Account *account.Handler

	// Sessions resolves bearer tokens for protected routes.
	Sessions middleware.SessionResolver

	// Roles performs the admin check for administration routes.
	Roles middleware.RoleAuthorizer
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(chimw.CleanPath)

	// Unmatched routes answer with the envelope too.
	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Write(writer, respond.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Write(writer, respond.Failure(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	authenticate := middleware.Authenticate(h.Sessions)
	requireAdmin := middleware.RequireRole(h.Roles, sec.RoleAdmin)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route(constants.APIPrefix, func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(authenticate))
		api.Mount("/users", h.Account.Routes(authenticate, requireAdmin))
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
