// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fleetadmin/internal/platform/dberr"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/platform/session"
)

// UserColumns is the select list matching [ScanUser].
const UserColumns = `id, first_name, last_name, email, password_hash, employee_number,
	active, verified, picture, department, role::text, created_at, updated_at`

// ScanUser hydrates a [User] from a row selected with [UserColumns].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.EmployeeNumber,
		&user.Active,
		&user.Verified,
		&user.Picture,
		&user.Department,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = sec.UserRole(role)
	return user, nil
}

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (
			id, first_name, last_name, email, password_hash, employee_number,
			active, verified, picture, department, role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::user_role, $12, $13)`

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.EmployeeNumber,
		user.Active,
		user.Verified,
		user.Picture,
		user.Department,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_user_repo_create_failed: %w", err), "User", "Email is already registered")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + UserColumns + ` FROM users WHERE email = $1`

	user, err := ScanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err), "User", "")
	}

	return user, nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + UserColumns + ` FROM users WHERE id = $1`

	user, err := ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err), "User", "")
	}

	return user, nil
}

// RoleOf implements [session.RoleSource] with a single-column lookup.
func (repository *PostgresUserRepository) RoleOf(context context.Context, userID string) (sec.UserRole, error) {
	const query = `SELECT role::text FROM users WHERE id = $1 AND active`

	var role string
	if err := repository.pool.QueryRow(context, query, userID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", session.ErrUnknownUser
		}
		return "", fmt.Errorf("postgres_user_repo_role_of_failed: %w", err)
	}

	return sec.UserRole(role), nil
}
