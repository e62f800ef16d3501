// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
)

// ErrUnknownUser is returned by a [RoleSource] when the user no longer exists.
var ErrUnknownUser = errors.New("session: unknown user")

// RoleSource looks up the current role of a user in the directory.
type RoleSource interface {
	RoleOf(context context.Context, userID string) (sec.UserRole, error)
}

// Authorizer performs the single admin/non-admin capability check used by every route.
type Authorizer struct {
	roles RoleSource
}

// NewAuthorizer constructs an [Authorizer].
func NewAuthorizer(roles RoleSource) *Authorizer {
	return &Authorizer{roles: roles}
}

// Authorize returns nil when the session's user holds at least the required role.
func (authorizer *Authorizer) Authorize(context context.Context, current *Session, required sec.UserRole) error {
	if current == nil {
		return apperr.New(apperr.KindMissingToken, msgMissingToken)
	}

	role, err := authorizer.roles.RoleOf(context, current.UserID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return apperr.Unauthorized("User not found")
		}
		return apperr.Internal(err)
	}

	if !role.AtLeast(required) {
		return apperr.Forbidden("Insufficient permissions")
	}

	return nil
}
