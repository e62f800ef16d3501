// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrStoreUnavailable wraps every transport failure of a [RevocationStore].
//
// Callers must treat it as "cannot verify authorization", never as "not revoked".
var ErrStoreUnavailable = errors.New("session: revocation store unavailable")

// # Revocation Data Access

// RevocationStore keeps the per-user set of revoked token strings.
type RevocationStore interface {

	/*
		Revoke adds token to the user's revoked set. Adding twice is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string

		Returns:
		  - error: ErrStoreUnavailable on transport failures
	*/
	Revoke(context context.Context, userID, token string) error

	/*
		IsRevoked tests membership of token in the user's revoked set.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string

		Returns:
		  - bool: true if the token was revoked
		  - error: ErrStoreUnavailable on transport failures
	*/
	IsRevoked(context context.Context, userID, token string) (bool, error)
}

// RevokedSetKey returns the key of a user's revoked-token set.
func RevokedSetKey(userID string) string {
	return fmt.Sprintf("user:%s:revoked-tokens", userID)
}
