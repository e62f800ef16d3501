// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements request authentication and server-side logout.

It resolves the bearer token of every protected request into a [Session] and
supports revocation before natural expiry through a per-user revocation set.

# Pipeline

  - ExtractHeader: read "Authorization: Bearer <token>".
  - Verify: signature and expiry via the injected [TokenVerifier] (no I/O).
  - CheckRevocation: membership test against the [RevocationStore].

Every rejection is an [*apperr.AppError] whose kind names the failure; the
response layer decides the HTTP status.
*/
package session

// Session is the authenticated identity of one request.
//
// It is built once by [Resolver.Resolve] and owned by the request context.
type Session struct {
	UserID   string
	RawToken string
}

// Client-facing rejection messages. They never include internal details.
const (
	msgMissingToken     = "Please provide a token"
	msgInvalidToken     = "Invalid token"
	msgBlacklisted      = "Blacklisted token"
	msgStoreUnavailable = "Service unavailable"
)
