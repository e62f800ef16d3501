// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
)

func TestAs_ThroughWrapping(t *testing.T) {
	base := apperr.Forbidden("Insufficient permissions")
	wrapped := fmt.Errorf("account_service_failed: %w", base)

	found := apperr.As(wrapped)
	require.NotNil(t, found)
	assert.Equal(t, apperr.KindForbidden, found.Kind)
	assert.True(t, apperr.IsKind(wrapped, apperr.KindForbidden))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindNotFound))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsKind(nil, apperr.KindInternal))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "An unexpected error occurred", err.Message)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKind_IsAuthentication(t *testing.T) {
	for _, kind := range []apperr.Kind{
		apperr.KindMissingToken,
		apperr.KindMalformedToken,
		apperr.KindInvalidSignature,
		apperr.KindExpired,
		apperr.KindBlacklisted,
	} {
		assert.True(t, kind.IsAuthentication(), kind)
	}

	assert.False(t, apperr.KindStoreUnavailable.IsAuthentication())
	assert.False(t, apperr.KindForbidden.IsAuthentication())
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "User not found", apperr.NotFound("User").Message)
}
