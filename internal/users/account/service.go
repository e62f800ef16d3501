// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/validate"
	"github.com/taibuivan/fleetadmin/internal/users/auth"
	"github.com/taibuivan/fleetadmin/pkg/pagination"
)

// Service implements the account read use cases.
type Service struct {
	accountRepository AccountRepository
}

// NewService constructs a new account [Service].
func NewService(accounts AccountRepository) *Service {
	return &Service{accountRepository: accounts}
}

/*
GetProfile returns the account behind the current session.

Description: A valid token whose user no longer exists is treated as unauthenticated.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The caller's account
  - error: Unauthorized or storage errors
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, err
	}

	return user, nil
}

// GetUser returns any account by ID. Callers must have checked the admin role.
func (service *Service) GetUser(context context.Context, id string) (*auth.User, error) {
	if err := (&validate.Validator{}).UUID("id", id).Err(); err != nil {
		return nil, err
	}

	return service.accountRepository.FindByID(context, id)
}

// ListUsers returns one page of accounts. Callers must have checked the admin role.
func (service *Service) ListUsers(context context.Context, params pagination.Params) (*UserPage, error) {
	users, total, err := service.accountRepository.List(context, params)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []*auth.User{}
	}

	return &UserPage{
		Items: users,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}
