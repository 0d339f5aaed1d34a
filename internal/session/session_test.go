// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndResolve(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, token, 2*idLength)

	data, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "user-1", data.UserID)
	assert.False(t, data.CreatedAt.IsZero())
}

func TestTokensAreUnique(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	a, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	b, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestResolveUnknownToken(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	data, err := store.Resolve(ctx, "no-such-token")
	require.NoError(t, err, "an unknown token is anonymous, not an error")
	assert.Nil(t, data)

	data, err = store.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDestroy(t *testing.T) {
	store := NewStore(NewMemoryKV())
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, token))

	data, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, data)

	// Destroying again, or destroying nothing, stays quiet.
	require.NoError(t, store.Destroy(ctx, token))
	require.NoError(t, store.Destroy(ctx, ""))
}

func TestExpiry(t *testing.T) {
	store := NewStoreTTL(NewMemoryKV(), time.Millisecond)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	data, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, data, "expired sessions resolve to nothing")
}
