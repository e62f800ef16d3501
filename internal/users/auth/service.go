// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/ctxutil"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/platform/session"
	"github.com/taibuivan/fleetadmin/internal/platform/validate"
	"github.com/taibuivan/fleetadmin/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer signs session tokens. Satisfied by [*sec.TokenCodec].
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// SessionEnder revokes a resolved session. Satisfied by [*session.Resolver].
type SessionEnder interface {
	End(context context.Context, current *session.Session) error
}

// Password length bounds accepted at signup.
const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores bytes beyond 72
)

// errInvalidCredentials is shared by unknown emails and wrong passwords.
var errInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
	sessionEnder   SessionEnder
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, issuer TokenIssuer, ender SessionEnder) *Service {
	return &Service{
		userRepository: users,
		tokenIssuer:    issuer,
		sessionEnder:   ender,
	}
}

// # Registration Flow

// SignupInput holds the data required to enroll a new employee.
type SignupInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	PasswordVerify string
}

/*
Signup validates, hashes, and persists a brand new user account.

Description: New accounts start active, unverified and with the normal role.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created entity
  - error: Validation, Conflict (email taken) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, 100).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, 100).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		MinLen(FieldPassword, input.Password, minPasswordLength).
		Custom(FieldPassword, len(input.Password) > maxPasswordLength, fmt.Sprintf("Maximum %d bytes", maxPasswordLength)).
		Custom(FieldPasswordVerify, input.Password != input.PasswordVerify, "Passwords do not match")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: hashedPassword,
		Active:       true,
		Verified:     false,
		Role:         sec.RoleNormal,
	}

	// The unique index on email is the source of truth for duplicates.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_signed_up", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: Unknown emails still pay for one bcrypt comparison so response
timing does not reveal which addresses are registered.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - string: Signed session token (valid for sec.TokenLifetime)
  - error: Unauthorized, Forbidden (disabled account) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (string, error) {
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			sec.BurnPasswordCheck(input.Password)
			return "", errInvalidCredentials
		}
		return "", err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return "", errInvalidCredentials
	}

	if !user.Active {
		return "", apperr.Forbidden("Account is disabled")
	}

	token, err := service.tokenIssuer.Issue(user.ID)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_issue_token_failed: %w", err))
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))
	return token, nil
}

/*
Logout revokes the token of the current session.

Parameters:
  - context: context.Context
  - current: *session.Session

Returns:
  - error: StoreUnavailable when the revocation store cannot be reached
*/
func (service *Service) Logout(context context.Context, current *session.Session) error {
	if err := service.sessionEnder.End(context, current); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_logged_out", slog.String("user_id", current.UserID))
	return nil
}
