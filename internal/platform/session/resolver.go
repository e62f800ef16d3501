// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
)

// bearerScheme is the exact scheme keyword accepted in the Authorization header.
const bearerScheme = "Bearer"

// TokenVerifier is the stateless half of the pipeline.
//
// Satisfied by [*sec.TokenCodec]; declared here so tests can substitute it.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.TokenClaims, error)
}

// Resolver turns an Authorization header into a [Session] or a typed rejection.
type Resolver struct {
	verifier TokenVerifier
	store    RevocationStore
}

// NewResolver constructs a [Resolver] with its injected dependencies.
func NewResolver(verifier TokenVerifier, store RevocationStore) *Resolver {
	return &Resolver{verifier: verifier, store: store}
}

// ExtractBearer returns the token of a "Bearer <token>" header value.
//
// Surrounding whitespace is tolerated. The scheme keyword must match exactly
// and be followed by whitespace; "Bearerabc" carries no token at all.
func ExtractBearer(header string) (string, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(header), bearerScheme)
	if !found || rest == "" {
		return "", false
	}

	if !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}

	token := strings.TrimSpace(rest)
	return token, token != ""
}

/*
Resolve authenticates one request.

Description: Signature and expiry checks run before any store I/O, so a
cryptographic rejection never pays for a network round trip. There is no retry.

Parameters:
  - context: context.Context
  - authorizationHeader: string (raw header value, possibly empty)

Returns:
  - *Session: the authenticated identity
  - error: *apperr.AppError of an authentication kind, or KindStoreUnavailable
*/
func (resolver *Resolver) Resolve(context context.Context, authorizationHeader string) (*Session, error) {

	// 1. ExtractHeader
	token, ok := ExtractBearer(authorizationHeader)
	if !ok {
		return nil, apperr.New(apperr.KindMissingToken, msgMissingToken)
	}

	// 2. Verify
	claims, err := resolver.verifier.Verify(token)
	if err != nil {
		return nil, apperr.Wrap(verifyKind(err), msgInvalidToken, err)
	}

	// 3. CheckRevocation
	revoked, err := resolver.store.IsRevoked(context, claims.Subject, token)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreUnavailable, msgStoreUnavailable, err)
	}
	if revoked {
		return nil, apperr.New(apperr.KindBlacklisted, msgBlacklisted)
	}

	return &Session{UserID: claims.Subject, RawToken: token}, nil
}

/*
End revokes the session's token (logout).

Description: Idempotent; ending an already ended session still succeeds.

Parameters:
  - context: context.Context
  - current: *Session

Returns:
  - error: KindStoreUnavailable when the store cannot be reached
*/
func (resolver *Resolver) End(context context.Context, current *Session) error {
	if current == nil {
		return apperr.New(apperr.KindMissingToken, msgMissingToken)
	}

	if err := resolver.store.Revoke(context, current.UserID, current.RawToken); err != nil {
		return apperr.Wrap(apperr.KindStoreUnavailable, msgStoreUnavailable, err)
	}

	return nil
}

// verifyKind classifies a verification failure. Unknown failures fail closed as malformed.
func verifyKind(err error) apperr.Kind {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.KindExpired
	case errors.Is(err, sec.ErrInvalidSignature):
		return apperr.KindInvalidSignature
	default:
		return apperr.KindMalformedToken
	}
}
