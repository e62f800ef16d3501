// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
//   - pgx.ErrNoRows becomes NotFound(resource).
//   - A unique violation becomes Conflict(conflictMessage) when one is given.
//   - Anything else becomes Internal, keeping err as the logged cause.
func Wrap(err error, resource, conflictMessage string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint mapping by SQLSTATE
	var pgError *pgconn.PgError
	if conflictMessage != "" && errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		return apperr.Wrap(apperr.KindConflict, conflictMessage, err)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
