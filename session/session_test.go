package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/checkai-srv/checkai/archive"
	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/checkerr"
	"github.com/checkai-srv/checkai/eventbus"
	"github.com/checkai-srv/checkai/game"
)

func newTestManager() *Manager {
	return New(eventbus.New(16), archive.NewMemoryStore(), nil)
}

func TestCreateAndGetGame(t *testing.T) {
	m := newTestManager()
	id := m.CreateGame()

	view, err := m.GetGame(id)
	require.NoError(t, err)
	assert.Equal(t, id, view.GameID)
	assert.False(t, view.IsOver)
}

func TestGetGameNotFound(t *testing.T) {
	m := newTestManager()
	_, err := m.GetGame("does-not-exist")
	require.Error(t, err)
	assert.True(t, checkerr.Is(err, checkerr.CodeNotFound))
}

func TestSubmitMovePublishesUpdate(t *testing.T) {
	m := newTestManager()
	id := m.CreateGame()
	sub := m.bus.Subscribe(id)
	defer sub.Close()
	// game_created was published before this subscription existed, so the
	// first event delivered here is the game_updated from SubmitMove.

	moves, err := m.LegalMoves(id)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	outcome, err := m.SubmitMove(id, moves[0])
	require.NoError(t, err)
	assert.Equal(t, id, outcome.GameID)

	ev := <-sub.C
	assert.Equal(t, eventbus.GameUpdated, ev.Kind)
}

func TestDeleteTerminalGameArchives(t *testing.T) {
	store := archive.NewMemoryStore()
	m := New(eventbus.New(16), store, nil)
	id := m.CreateGame()

	_, err := m.SubmitAction(id, game.Action{Kind: game.ActionResign})
	require.NoError(t, err)

	require.NoError(t, m.DeleteGame(id))

	_, err = m.GetGame(id)
	require.Error(t, err)

	rec, err := store.Replay(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.GameID)
}

func TestDeleteLiveGameDoesNotArchive(t *testing.T) {
	store := archive.NewMemoryStore()
	m := New(eventbus.New(16), store, nil)
	id := m.CreateGame()

	require.NoError(t, m.DeleteGame(id))

	_, err := store.Replay(id)
	require.Error(t, err)
}

// TestConcurrentGamesProgressIndependently drives many games' moves
// concurrently via an errgroup and checks each game's history records all
// four moves — exercising the per-game lock without serializing unrelated
// games.
func TestConcurrentGamesProgressIndependently(t *testing.T) {
	m := newTestManager()
	const n = 8
	ids := make([]string, n)
	for i := range ids {
		ids[i] = m.CreateGame()
	}

	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			for i := 0; i < 4; i++ {
				moves, err := m.LegalMoves(id)
				if err != nil {
					return err
				}
				if _, err := m.SubmitMove(id, moves[0]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		view, err := m.GetGame(id)
		require.NoError(t, err)
		require.Len(t, view.MoveHistory, 4)
	}
}

func TestSubmitMoveOnUnknownGame(t *testing.T) {
	m := newTestManager()
	_, err := m.SubmitMove("missing", board.Move{})
	require.Error(t, err)
	assert.True(t, checkerr.Is(err, checkerr.CodeNotFound))
}
