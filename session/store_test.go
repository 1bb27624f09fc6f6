package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)

	// Tokens are unique per session.
	other, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	require.NotEqual(t, token, other)

	require.NoError(t, store.Delete(ctx, token))
	userID, err = store.Lookup(ctx, token)
	require.NoError(t, err)
	require.Empty(t, userID)

	// Deleting twice is fine.
	require.NoError(t, store.Delete(ctx, token))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	require.NoError(t, err)

	// Force the entry past its deadline.
	store.mu.Lock()
	entry := store.entries[token]
	entry.expiresAt = time.Now().Add(-time.Second)
	store.entries[token] = entry
	store.mu.Unlock()

	userID, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	require.Empty(t, userID)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore()

	userID, err := store.Lookup(context.Background(), "never-issued")
	require.NoError(t, err)
	require.Empty(t, userID)
}
