package session

import (
	"context"
	"testing"
	"time"

	"financial-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	conv := &models.ConversationContext{
		UserID: 1,
		Stage:  "initial",
		Messages: []models.ConversationMessage{
			{ID: "m1", Role: "user", Content: "hello"},
		},
	}
	require.NoError(t, store.Put(ctx, 1, conv))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestMemoryStoreMissReturnsNil(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	got, err := store.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, &models.ConversationContext{UserID: 1}))
	time.Sleep(30 * time.Millisecond)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, &models.ConversationContext{UserID: 1}))
	require.NoError(t, store.Delete(ctx, 1))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreSweepDropsExpired(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, &models.ConversationContext{UserID: 1}))
	time.Sleep(30 * time.Millisecond)
	store.Sweep()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.entries)
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, &models.ConversationContext{UserID: 1, Stage: "initial"}))
	require.NoError(t, store.Put(ctx, 2, &models.ConversationContext{UserID: 2, Stage: "planning"}))

	got1, err := store.Get(ctx, 1)
	require.NoError(t, err)
	got2, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "initial", got1.Stage)
	assert.Equal(t, "planning", got2.Stage)
}
