// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/constants"
	"github.com/taibuivan/fleetadmin/internal/platform/ctxutil"
	"github.com/taibuivan/fleetadmin/internal/platform/respond"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/platform/session"
)

// SessionResolver is the subset of [*session.Resolver] used by [Authenticate].
type SessionResolver interface {
	Resolve(context context.Context, authorizationHeader string) (*session.Session, error)
}

// RoleAuthorizer is the subset of [*session.Authorizer] used by [RequireRole].
type RoleAuthorizer interface {
	Authorize(context context.Context, current *session.Session, required sec.UserRole) error
}

// Authenticate resolves the bearer token of every request it guards.
//
// # Flow
//  1. Resolve 'Authorization: Bearer <token>' through the [SessionResolver].
//  2. On rejection, answer with the failure envelope of the rejection kind.
//  3. Inject the [*session.Session] into the request context for downstream use.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Resolution ─────────────────────────────────────────────────
			current, err := resolver.Resolve(ctx, request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				if appError := apperr.As(err); appError != nil && appError.Kind.IsAuthentication() {
					ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_rejected",
						slog.String("kind", string(appError.Kind)),
					)
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 2. Context Injection ──────────────────────────────────────────
			if recorder, ok := writer.(*statusRecorder); ok {
				recorder.userID = current.UserID
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithSession(ctx, current)))
		})
	}
}

// RequireRole blocks requests whose user does not hold at least role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireRole(authorizer RoleAuthorizer, role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			if err := authorizer.Authorize(ctx, ctxutil.GetSession(ctx), role); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
