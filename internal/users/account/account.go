// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account exposes user records to their owners and to administrators.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: "me" needs a session; listing and lookup by ID need the admin role.
*/
package account

import (
	"context"

	"github.com/taibuivan/fleetadmin/internal/users/auth"
	"github.com/taibuivan/fleetadmin/pkg/pagination"
)

// UserPage is one page of the admin user listing.
type UserPage struct {
	Items []*auth.User    `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// # Repository Contracts

// AccountRepository defines the read contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		List returns one page of users ordered by creation time, and the total count.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*auth.User: The page
		  - int: Total number of users
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]*auth.User, int, error)
}
