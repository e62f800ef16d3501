// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// session resolver and the auth service via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Token Constraints

const (
	// TokenLifetime is how long an issued bearer token stays valid.
	TokenLifetime = 5 * time.Hour

	// MinSecretLength is the minimum HMAC key size accepted at startup (256 bits).
	MinSecretLength = 32
)

var (
	// ErrKeyMisconfigured is returned at construction time for an absent or weak secret.
	ErrKeyMisconfigured = errors.New("sec: signing secret is missing or too short")

	// ErrMalformedToken is returned when the token cannot be decoded.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrInvalidSignature is returned when the MAC does not match the secret.
	ErrInvalidSignature = errors.New("sec: invalid token signature")

	// ErrTokenExpired is returned when now is past the token's expiry.
	ErrTokenExpired = errors.New("sec: token expired")
)

// TokenClaims is the identity/validity payload embedded inside a bearer token.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenOption customizes a [TokenCodec].
type TokenOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(codec *TokenCodec) {
		codec.now = now
	}
}

// TokenCodec signs and verifies HS256 bearer tokens.
//
// It is stateless and safe for concurrent use. The secret is read-only after construction.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec creates a codec bound to secret.
//
// A missing or short secret is a startup defect and yields [ErrKeyMisconfigured].
func NewTokenCodec(secret string, opts ...TokenOption) (*TokenCodec, error) {
	if len(strings.TrimSpace(secret)) < MinSecretLength {
		return nil, ErrKeyMisconfigured
	}

	codec := &TokenCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	codec.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		// A token is still valid at the second it expires (now <= exp);
		// the parser itself treats exp as exclusive.
		jwt.WithTimeFunc(func() time.Time { return codec.now().Add(-time.Nanosecond) }),
	)

	return codec, nil
}

// Issue creates a signed token for userID valid for [TokenLifetime].
func (codec *TokenCodec) Issue(userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("sec: subject is not a uuid: %w", err)
	}

	issuedAt := codec.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks structure, signature and expiry of tokenString.
//
// It never consults a store. Any failure is one of [ErrMalformedToken],
// [ErrInvalidSignature] or [ErrTokenExpired].
func (codec *TokenCodec) Verify(tokenString string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := codec.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return codec.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if !token.Valid || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrMalformedToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrMalformedToken)
	}

	return &TokenClaims{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
