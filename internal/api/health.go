// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/fleetadmin/internal/platform/constants"
	"github.com/taibuivan/fleetadmin/internal/platform/ctxutil"
	"github.com/taibuivan/fleetadmin/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "ok", map[string]string{
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness handles GET /ready (Readiness probe).
//
// Failing dependencies are named in the logs only; the body stays generic.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), constants.ReadinessTimeout)
	defer cancel()

	checks := map[string]func(context.Context) error{
		"postgres": handler.dependencies.CheckDatabase,
		"redis":    handler.dependencies.CheckCache,
	}

	results := make(map[string]bool, len(checks))
	isSystemReady := true

	for name, check := range checks {
		if check == nil {
			continue
		}

		err := check(ctx)
		results[name] = err == nil
		if err != nil {
			isSystemReady = false
			ctxutil.GetLogger(ctx).ErrorContext(ctx, "readiness_check_failed",
				slog.String("dependency", name),
				slog.Any("error", err),
			)
		}
	}

	if !isSystemReady {
		respond.Write(writer, respond.Failure(http.StatusServiceUnavailable, "Service unavailable"))
		return
	}

	respond.OK(writer, "ready", map[string]any{constants.FieldChecks: results})
}
