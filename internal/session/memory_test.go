package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(15 * time.Minute)

	sid, err := store.Create(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	s, err := store.Get(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, sid, s.ID)
	assert.True(t, s.ExpiresAt.After(s.CreatedAt))
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore(15 * time.Minute)

	s, err := store.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestMemoryStoreExpiredNeverValid(t *testing.T) {
	ctx := context.Background()
	// Negative lifetime: every session is born expired, so Get must treat
	// it as absent even though no sweep has run.
	store := NewMemoryStore(-time.Minute)

	sid, err := store.Create(ctx, "alice")
	require.NoError(t, err)

	s, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, s)

	// The lazy purge removed the record too.
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreMultipleSessionsPerUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(15 * time.Minute)

	sid1, err := store.Create(ctx, "alice")
	require.NoError(t, err)
	sid2, err := store.Create(ctx, "alice")
	require.NoError(t, err)

	assert.NotEqual(t, sid1, sid2)
	for _, sid := range []string{sid1, sid2} {
		s, err := store.Get(ctx, sid)
		require.NoError(t, err)
		require.NotNil(t, s)
	}
}

func TestMemoryStoreDestroyIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(15 * time.Minute)

	sid, err := store.Create(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, sid))
	s, err := store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, s)

	// Destroying again is not an error.
	require.NoError(t, store.Destroy(ctx, sid))
	require.NoError(t, store.Destroy(ctx, "never-existed"))
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(-time.Minute)

	_, err := store.Create(ctx, "alice")
	require.NoError(t, err)
	_, err = store.Create(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 0, store.Len())
}
