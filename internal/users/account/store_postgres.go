// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fleetadmin/internal/platform/dberr"
	"github.com/taibuivan/fleetadmin/internal/users/auth"
	"github.com/taibuivan/fleetadmin/pkg/pagination"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := `SELECT ` + auth.UserColumns + ` FROM users WHERE id = $1`

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err), "User", "")
	}

	return user, nil
}

/*
List retrieves one page of users and the total count.

Description: The count and the page run in one batch round trip.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*auth.User: Users ordered by creation time
  - int: Total number of users
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) List(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	const countQuery = `SELECT count(*) FROM users`
	pageQuery := `SELECT ` + auth.UserColumns + ` FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2`

	batch := &pgx.Batch{}
	batch.Queue(countQuery)
	batch.Queue(pageQuery, params.Limit, params.Offset())

	results := repository.pool.SendBatch(context, batch)
	defer results.Close()

	var total int
	if err := results.QueryRow().Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres_account_repo_count_failed: %w", err), "User", "")
	}

	rows, err := results.Query()
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres_account_repo_list_failed: %w", err), "User", "")
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*auth.User, error) {
		return auth.ScanUser(row)
	})
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres_account_repo_scan_failed: %w", err), "User", "")
	}

	return users, total, nil
}
