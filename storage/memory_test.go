package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmahjong/xuezhan/game"
	"github.com/openmahjong/xuezhan/storage"
)

func Test_MemoryStoreRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	state := game.NewGame("g1", game.DefaultRules(), "p0", "alice", 1000)
	_, err := state.AddPlayer("p1", "bob")
	require.NoError(t, err)
	require.NoError(t, state.Start(1000))

	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, state.GameID, loaded.GameID)
	assert.Equal(t, state.Phase, loaded.Phase)
	assert.Equal(t, len(state.Wall), len(loaded.Wall))
	require.Len(t, loaded.Players, 2)
	assert.Equal(t, state.Players[0].Hand.Concealed, loaded.Players[0].Hand.Concealed)
	require.NotNil(t, loaded.Ledger)
	assert.Equal(t, 2, loaded.Ledger.SeatCount)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.Delete(ctx, "g1"))
	_, err = store.Load(ctx, "g1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, err, game.ErrGameNotFound)
}
