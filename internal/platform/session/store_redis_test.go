// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformredis "github.com/taibuivan/fleetadmin/internal/platform/redis"
	"github.com/taibuivan/fleetadmin/internal/platform/sec"
	"github.com/taibuivan/fleetadmin/internal/platform/session"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	options, err := platformredis.Options("redis://" + server.Addr())
	require.NoError(t, err)
	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

/*
TestRedisRevocationStore_Revoke verifies membership, TTL refresh and idempotence.
*/
func TestRedisRevocationStore_Revoke(t *testing.T) {
	server, client := newRedis(t)
	store := session.NewRedisRevocationStore(client, sec.TokenLifetime)
	ctx := context.Background()

	// 1. Not revoked yet
	revoked, err := store.IsRevoked(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 2. Revoke twice
	require.NoError(t, store.Revoke(ctx, "u1", "tok"))
	require.NoError(t, store.Revoke(ctx, "u1", "tok"))

	revoked, err = store.IsRevoked(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 3. Stored as a single set member with the lifetime as TTL
	members, err := server.Members(session.RevokedSetKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"tok"}, members)
	assert.Equal(t, sec.TokenLifetime, server.TTL(session.RevokedSetKey("u1")))

	// 4. Other users are unaffected
	revoked, err = store.IsRevoked(ctx, "u2", "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}

/*
TestRedisRevocationStore_Unavailable checks that transport errors surface as ErrStoreUnavailable.
*/
func TestRedisRevocationStore_Unavailable(t *testing.T) {
	server, client := newRedis(t)
	store := session.NewRedisRevocationStore(client, sec.TokenLifetime)
	ctx := context.Background()

	server.SetError("LOADING redis is loading the dataset")

	_, err := store.IsRevoked(ctx, "u1", "tok")
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)

	err = store.Revoke(ctx, "u1", "tok")
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
}

/*
TestRedisRevocationStore_Concurrent revokes many tokens of one user from
parallel goroutines while others read the same set.
*/
func TestRedisRevocationStore_Concurrent(t *testing.T) {
	server, client := newRedis(t)
	store := session.NewRedisRevocationStore(client, sec.TokenLifetime)
	ctx := context.Background()

	const workers = 32
	errs := make(chan error, workers*2)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- store.Revoke(ctx, "u1", fmt.Sprintf("tok-%02d", i))
		}()
		go func() {
			defer wg.Done()
			_, err := store.IsRevoked(ctx, "u1", fmt.Sprintf("tok-%02d", i))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	want := make([]string, 0, workers)
	for i := range workers {
		want = append(want, fmt.Sprintf("tok-%02d", i))
	}

	members, err := server.Members(session.RevokedSetKey("u1"))
	require.NoError(t, err)
	sort.Strings(members)
	assert.Equal(t, want, members)

	for _, token := range want {
		revoked, err := store.IsRevoked(ctx, "u1", token)
		require.NoError(t, err)
		assert.True(t, revoked, token)
	}
}

func TestRevokedSetKey(t *testing.T) {
	assert.Equal(t, "user:42:revoked-tokens", session.RevokedSetKey("42"))
}
