package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkai-srv/checkai/game"
)

func sampleRecord(id string) Record {
	win := "WhiteWins"
	return Record{
		GameID:     id,
		ArchivedAt: time.Now(),
		View:       game.GameView{GameID: id, Result: &win},
		PGN:        "1. e4 e5 *",
	}
}

func testStore(t *testing.T) Store {
	t.Helper()
	store, err := OpenBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMemoryStorePutReplay(t *testing.T) {
	store := NewMemoryStore()
	rec := sampleRecord("g1")
	require.NoError(t, store.Put(rec))

	got, err := store.Replay("g1")
	require.NoError(t, err)
	assert.Equal(t, rec.GameID, got.GameID)
	assert.Equal(t, rec.PGN, got.PGN)
}

func TestMemoryStoreReplayMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Replay("missing")
	require.Error(t, err)
	assert.IsType(t, &ErrNotFound{}, err)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	older := sampleRecord("g1")
	older.ArchivedAt = time.Now().Add(-time.Hour)
	newer := sampleRecord("g2")

	require.NoError(t, store.Put(older))
	require.NoError(t, store.Put(newer))

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "g2", summaries[0].GameID)
	assert.Equal(t, "g1", summaries[1].GameID)
}

func TestBadgerStorePutReplay(t *testing.T) {
	store := testStore(t)
	rec := sampleRecord("g1")
	require.NoError(t, store.Put(rec))

	got, err := store.Replay("g1")
	require.NoError(t, err)
	assert.Equal(t, rec.GameID, got.GameID)
	assert.Equal(t, rec.PGN, got.PGN)
}

func TestBadgerStoreReplayMissing(t *testing.T) {
	store := testStore(t)
	_, err := store.Replay("missing")
	require.Error(t, err)
	assert.IsType(t, &ErrNotFound{}, err)
}
