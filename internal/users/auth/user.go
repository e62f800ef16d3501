// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user directory and the authentication use cases.

It defines the User entity, its PostgreSQL repository, and the signup, login
and logout flows that issue and revoke session tokens.
*/
package auth

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/taibuivan/fleetadmin/internal/platform/sec"
)

// # Domain Entities

// User represents an employee account of the fleet backend.
type User struct {
	ID             string       `json:"id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // Explicitly omitted from JSON for security.
	EmployeeNumber *int16       `json:"employee_number"`
	Active         bool         `json:"active"`
	Verified       bool         `json:"verified"`
	Picture        string       `json:"picture"`
	Department     *int32       `json:"department"`
	Role           sec.UserRole `json:"role"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (user *User) IsAdmin() bool {
	return user.Role.AtLeast(sec.RoleAdmin)
}

// # Field Identifiers

const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPasswordVerify = "password_verify"
)

// # Normalization

// NormalizeEmail trims and case-folds an address so lookups and inserts agree.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
