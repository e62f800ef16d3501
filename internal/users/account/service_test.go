// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/users/account"
	"github.com/taibuivan/fleetadmin/internal/users/auth"
	"github.com/taibuivan/fleetadmin/pkg/pagination"
)

type fakeAccounts struct {
	users []*auth.User
}

func (accounts *fakeAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range accounts.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (accounts *fakeAccounts) List(_ context.Context, params pagination.Params) ([]*auth.User, int, error) {
	start := min(params.Offset(), len(accounts.users))
	end := min(start+params.Limit, len(accounts.users))
	if start == end {
		return nil, len(accounts.users), nil
	}
	return accounts.users[start:end], len(accounts.users), nil
}

func seeded(count int) *fakeAccounts {
	accounts := &fakeAccounts{}
	for range count {
		accounts.users = append(accounts.users, &auth.User{ID: uuid.NewString()})
	}
	return accounts
}

/*
TestService_GetProfile checks that a vanished user is reported as unauthenticated.
*/
func TestService_GetProfile(t *testing.T) {
	accounts := seeded(1)
	service := account.NewService(accounts)

	user, err := service.GetProfile(context.Background(), accounts.users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, accounts.users[0], user)

	_, err = service.GetProfile(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestService_GetUser(t *testing.T) {
	accounts := seeded(1)
	service := account.NewService(accounts)

	_, err := service.GetUser(context.Background(), accounts.users[0].ID)
	assert.NoError(t, err)

	_, err = service.GetUser(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = service.GetUser(context.Background(), "42")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

/*
TestService_ListUsers verifies pagination metadata and the empty-page shape.
*/
func TestService_ListUsers(t *testing.T) {
	service := account.NewService(seeded(5))

	page, err := service.ListUsers(context.Background(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 5, TotalPages: 3, HasNext: true}, page.Meta)

	page, err = service.ListUsers(context.Background(), pagination.Params{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
