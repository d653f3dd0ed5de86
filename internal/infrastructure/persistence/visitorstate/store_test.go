package visitorstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/session"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.NewConnection("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateSchema())

	return NewStore(db)
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	original := session.New("01ARZ3NDEKTSV4RRFFQ69G5FAV", now)
	original.UpsertGamePreference("european", 120000)
	original.UpsertContentEngagement("house-edge", 30000, 85)
	original.AddSignal(session.SignalEngagement, 0.6, now, 0)

	require.NoError(t, store.Put(ctx, SessionKey(original.SessionID), original))

	restored := &session.Session{}
	found, err := store.Get(ctx, SessionKey(original.SessionID), restored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, original, restored)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	var out map[string]any
	found, err := store.Get(context.Background(), SessionKey("nope"), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, LimitsKey("v1"), map[string]int{"timeLimit": 60}))
	require.NoError(t, store.Put(ctx, LimitsKey("v1"), map[string]int{"timeLimit": 30}))

	var out map[string]int
	found, err := store.Get(ctx, LimitsKey("v1"), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 30, out["timeLimit"])
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, ConsentKey("v1"), map[string]bool{"hasConsented": true}))
	require.NoError(t, store.Delete(ctx, ConsentKey("v1")))
	require.NoError(t, store.Delete(ctx, ConsentKey("v1")))

	var out map[string]bool
	found, err := store.Get(ctx, ConsentKey("v1"), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeyPrefixesDistinct(t *testing.T) {
	keys := []string{
		SessionKey("v1"), ConsentKey("v1"), AssessmentsKey("v1"), LimitsKey("v1"), ExperimentsKey("v1"),
	}
	seen := make(map[string]struct{})
	for _, key := range keys {
		_, dup := seen[key]
		assert.False(t, dup, "duplicate key %s", key)
		seen[key] = struct{}{}
	}
}
