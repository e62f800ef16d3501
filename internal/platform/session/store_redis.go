// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevocationStore implements [RevocationStore] on Redis sets.
//
// It holds the shared, pooled client created at startup; it never dials per request.
type RedisRevocationStore struct {
	client *redis.Client
	setTTL time.Duration
}

// NewRedisRevocationStore creates a Redis-backed RevocationStore.
//
// setTTL is refreshed on every revoke so a user's set disappears once every
// member has expired naturally. Pass the token lifetime.
func NewRedisRevocationStore(client *redis.Client, setTTL time.Duration) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, setTTL: setTTL}
}

/*
Revoke adds the token to the user's set and refreshes the set expiry.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: ErrStoreUnavailable wrapping the redis failure
*/
func (store *RedisRevocationStore) Revoke(context context.Context, userID, token string) error {
	key := RevokedSetKey(userID)

	// SADD and EXPIRE travel in one MULTI/EXEC round trip
	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.SAdd(context, key, token)
		if store.setTTL > 0 {
			pipe.Expire(context, key, store.setTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: redis_revocation_add_failed: %w", ErrStoreUnavailable, err)
	}

	return nil
}

/*
IsRevoked checks whether the token is a member of the user's set.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - bool: membership
  - error: ErrStoreUnavailable wrapping the redis failure
*/
func (store *RedisRevocationStore) IsRevoked(context context.Context, userID, token string) (bool, error) {
	isMember, err := store.client.SIsMember(context, RevokedSetKey(userID), token).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis_revocation_check_failed: %w", ErrStoreUnavailable, err)
	}

	return isMember, nil
}
