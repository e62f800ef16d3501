// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for the fleet API.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and the uniform response envelope.

Architecture:

  - AppError: A struct containing a taxonomy [Kind] and a client-safe message.
  - Kind: The closed set of failure classes every component reports with.
  - Mapping: Kind → HTTP status lives in package respond and nowhere else.

Every error that leaves the service layer should be an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
)

// # Taxonomy

// Kind classifies an [AppError]. Components pick a Kind; they never pick an HTTP status.
type Kind string

const (
	// Authentication failures raised by the session resolver.
	KindMissingToken     Kind = "MISSING_TOKEN"
	KindMalformedToken   Kind = "MALFORMED_TOKEN"
	KindInvalidSignature Kind = "INVALID_SIGNATURE"
	KindExpired          Kind = "TOKEN_EXPIRED"
	KindBlacklisted      Kind = "BLACKLISTED"

	// KindStoreUnavailable means authorization could not be verified.
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"

	// General request classes.
	KindBadRequest   Kind = "BAD_REQUEST"
	KindValidation   Kind = "VALIDATION_ERROR"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindRateLimited  Kind = "RATE_LIMITED"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// IsAuthentication reports whether k is one of the per-request token rejections.
func (k Kind) IsAuthentication() bool {
	switch k {
	case KindMissingToken, KindMalformedToken, KindInvalidSignature, KindExpired, KindBlacklisted:
		return true
	default:
		return false
	}
}

// AppError is the canonical error type for the fleet API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (store hostnames, SQL, library text).
type AppError struct {
	// Kind is the taxonomy class of the failure.
	Kind Kind
	// Message is a human-readable description safe to return to the client.
	Message string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
	// Details holds per-field validation errors for KindValidation.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// New creates an [AppError] of the given kind.
func New(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

// Wrap creates an [AppError] of the given kind that keeps cause for logging.
func Wrap(kind Kind, msg string, cause error) *AppError {
	return &AppError{Kind: kind, Message: msg, Cause: cause}
}

// # Client Errors (4xx)

// BadRequest creates a [KindBadRequest] error.
func BadRequest(msg string) *AppError { return New(KindBadRequest, msg) }

// NotFound creates a [KindNotFound] error for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found"
func NotFound(resource string) *AppError {
	return New(KindNotFound, resource+" not found")
}

// Unauthorized creates a [KindUnauthorized] error.
func Unauthorized(msg string) *AppError { return New(KindUnauthorized, msg) }

// Forbidden creates a [KindForbidden] error.
func Forbidden(msg string) *AppError { return New(KindForbidden, msg) }

// Conflict creates a [KindConflict] error for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError { return New(KindConflict, msg) }

// ValidationError creates a [KindValidation] error with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Details: details}
}

// RateLimited creates a [KindRateLimited] error.
func RateLimited() *AppError { return New(KindRateLimited, "Too many requests") }

// # Server Errors (5xx)

// Internal wraps an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return Wrap(KindInternal, "An unexpected error occurred", cause)
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind reports whether err carries an [*AppError] of the given kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
