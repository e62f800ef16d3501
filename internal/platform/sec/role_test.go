// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/fleetadmin/internal/platform/sec"
)

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleNormal))
	assert.True(t, sec.RoleNormal.AtLeast(sec.RoleNormal))
	assert.False(t, sec.RoleNormal.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleNormal))
	assert.False(t, sec.UserRole("").Valid())
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	assert.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse", "not-a-bcrypt-hash"))

	sec.BurnPasswordCheck("anything")
}
