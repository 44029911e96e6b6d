package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/pet-adventure/internal/metrics"
	"github.com/jwebster45206/pet-adventure/pkg/actor"
	"github.com/jwebster45206/pet-adventure/pkg/state"
	"github.com/jwebster45206/pet-adventure/pkg/storage"
)

func TestCachedStorage_HitAfterSave(t *testing.T) {
	mock := storage.NewMockStorage()
	c := NewCachedStorage(mock, 16, time.Minute)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, c.SaveGameState(ctx, gs.ID, gs))
	assert.Equal(t, 1, c.Len())

	hits := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("gamestate", "hit"))
	loaded, err := c.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gs.ID, loaded.ID)
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("gamestate", "hit")))
}

func TestCachedStorage_ReturnsCopies(t *testing.T) {
	c := NewCachedStorage(storage.NewMockStorage(), 16, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	p := actor.NewPlayer()
	p.Name = "Ada"
	require.NoError(t, c.SavePlayer(ctx, id, p))

	first, err := c.LoadPlayer(ctx, id)
	require.NoError(t, err)
	first.Coins = 999

	second, err := c.LoadPlayer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20, second.Coins)
}

func TestCachedStorage_MissFillsCache(t *testing.T) {
	mock := storage.NewMockStorage()
	ctx := context.Background()
	id := uuid.New()

	pet, err := actor.NewPet(actor.SpeciesCat, "Mittens", "")
	require.NoError(t, err)
	require.NoError(t, mock.SavePet(ctx, id, pet))

	c := NewCachedStorage(mock, 16, time.Minute)
	misses := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("pet", "miss"))

	loaded, err := c.LoadPet(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Mittens", loaded.Name)
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("pet", "miss")))
	assert.Equal(t, 1, c.Len())
}

func TestCachedStorage_MissingIsNotCached(t *testing.T) {
	c := NewCachedStorage(storage.NewMockStorage(), 16, time.Minute)

	p, err := c.LoadPlayer(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, c.Len())
}

func TestCachedStorage_DeleteInvalidates(t *testing.T) {
	c := NewCachedStorage(storage.NewMockStorage(), 16, time.Minute)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, c.SaveGameState(ctx, gs.ID, gs))
	require.NoError(t, c.DeleteGameState(ctx, gs.ID))

	loaded, err := c.LoadGameState(ctx, gs.ID)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCachedStorage_FailedSaveDropsEntry(t *testing.T) {
	mock := storage.NewMockStorage()
	c := NewCachedStorage(mock, 16, time.Minute)
	ctx := context.Background()
	id := uuid.New()

	p := actor.NewPlayer()
	require.NoError(t, c.SavePlayer(ctx, id, p))

	mock.SetSaveError(assert.AnError)
	p.Coins = 50
	assert.Error(t, c.SavePlayer(ctx, id, p))
	assert.Equal(t, 0, c.Len())

	mock.SetSaveError(nil)
	loaded, err := c.LoadPlayer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.Coins)
}

func TestCachedStorage_OverRedis(t *testing.T) {
	rs, mr := setupTestRedis(t)
	c := NewCachedStorage(rs, 16, time.Minute)
	ctx := context.Background()

	gs := state.NewGameState()
	require.NoError(t, c.SaveGameState(ctx, gs.ID, gs))

	// Served from the cache even after Redis loses the key.
	mr.Del("progress:" + gs.ID.String())
	loaded, err := c.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	c.Purge()
	loaded, err = c.LoadGameState(ctx, gs.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
