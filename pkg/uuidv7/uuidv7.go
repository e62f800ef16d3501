// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// User IDs are UUIDv7 so the primary key index stays append-mostly in PostgreSQL.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable, which is an
// unrecoverable system-level error.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
