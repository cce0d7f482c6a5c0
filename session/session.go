// Package session implements the session manager (spec §4.3): the
// mapping from game id to Game, guarded by a per-game lock plus a
// read-write lock on the map itself, wired to the event bus and the
// archive collaborator.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/checkai-srv/checkai/archive"
	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/checkerr"
	"github.com/checkai-srv/checkai/eventbus"
	"github.com/checkai-srv/checkai/game"
)

// entry pairs a Game with the mutex that serializes access to it.
type entry struct {
	mu   sync.Mutex
	game *game.Game
}

// Manager owns every live game. The zero value is not usable; use New.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*entry

	bus     *eventbus.Bus
	archive archive.Store
	logger  *zap.Logger
}

// New returns an empty Manager wired to the given event bus and archive
// store. A nil logger is replaced with zap.NewNop().
func New(bus *eventbus.Bus, store archive.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		games:   make(map[string]*entry),
		bus:     bus,
		archive: store,
		logger:  logger.Named("session"),
	}
}

// Summary is one entry of ListGames, cheap to build without a full
// GameView (spec §4.3 list_games).
type Summary struct {
	GameID         string  `json:"game_id"`
	SideToMove     string  `json:"side_to_move"`
	FullmoveNumber int     `json:"fullmove_number"`
	Result         *string `json:"result"`
}

// CreateGame starts a fresh game in the starting position, registers it,
// and publishes game_created.
func (m *Manager) CreateGame() string {
	g := game.New()

	m.mu.Lock()
	m.games[g.ID] = &entry{game: g}
	m.mu.Unlock()

	m.bus.PublishGame(g.ID, eventbus.Event{
		Kind:   eventbus.GameCreated,
		GameID: g.ID,
		Data:   g.Snapshot(),
	})
	return g.ID
}

// ListGames returns a Summary for every live game. Order is unspecified.
func (m *Manager) ListGames() []Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Summary, 0, len(m.games))
	for id, e := range m.games {
		e.mu.Lock()
		side := "white"
		if e.game.SideToMove() == board.Black {
			side = "black"
		}
		var result *string
		if o := e.game.Outcome(); o != nil {
			r := string(o.Result)
			result = &r
		}
		out = append(out, Summary{
			GameID:         id,
			SideToMove:     side,
			FullmoveNumber: e.game.FullmoveNumber(),
			Result:         result,
		})
		e.mu.Unlock()
	}
	return out
}

func (m *Manager) lookup(gameID string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.games[gameID]
	m.mu.RUnlock()
	if !ok {
		return nil, checkerr.NotFound(gameID)
	}
	return e, nil
}

// GetGame returns the current snapshot of gameID.
func (m *Manager) GetGame(gameID string) (game.GameView, error) {
	e, err := m.lookup(gameID)
	if err != nil {
		return game.GameView{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot(), nil
}

// LegalMoves returns the current legal-move list of gameID.
func (m *Manager) LegalMoves(gameID string) ([]board.Move, error) {
	e, err := m.lookup(gameID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.LegalMoves(), nil
}

// SubmitMove applies mv to gameID and, on success, publishes
// game_updated.
func (m *Manager) SubmitMove(gameID string, mv board.Move) (game.MoveOutcome, error) {
	e, err := m.lookup(gameID)
	if err != nil {
		return game.MoveOutcome{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	outcome, err := e.game.ApplyMove(mv)
	if err != nil {
		return game.MoveOutcome{}, err
	}

	// Publish while still holding the per-game lock, so publish order
	// matches state-transition order (spec §5).
	m.bus.PublishGame(gameID, eventbus.Event{
		Kind:   eventbus.GameUpdated,
		GameID: gameID,
		Data:   outcome,
	})
	return outcome, nil
}

// SubmitAction applies a non-move action to gameID and, on success,
// publishes game_updated.
func (m *Manager) SubmitAction(gameID string, action game.Action) (game.ActionOutcome, error) {
	e, err := m.lookup(gameID)
	if err != nil {
		return game.ActionOutcome{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	outcome, err := e.game.ApplyAction(action)
	if err != nil {
		return game.ActionOutcome{}, err
	}

	// Publish while still holding the per-game lock, so publish order
	// matches state-transition order (spec §5).
	m.bus.PublishGame(gameID, eventbus.Event{
		Kind:   eventbus.GameUpdated,
		GameID: gameID,
		Data:   outcome,
	})
	return outcome, nil
}

// DeleteGame removes gameID from the live map. If the game had reached a
// terminal state, its final snapshot and PGN are handed to the archive
// collaborator first. Publishes game_deleted either way.
func (m *Manager) DeleteGame(gameID string) error {
	m.mu.Lock()
	e, ok := m.games[gameID]
	if !ok {
		m.mu.Unlock()
		return checkerr.NotFound(gameID)
	}
	delete(m.games, gameID)
	m.mu.Unlock()

	e.mu.Lock()
	terminal := e.game.IsOver()
	view := e.game.Snapshot()
	pgn := e.game.ExportPGN()
	e.mu.Unlock()

	if terminal && m.archive != nil {
		if err := m.archive.Put(archive.Record{
			GameID:     gameID,
			ArchivedAt: time.Now(),
			View:       view,
			PGN:        pgn,
		}); err != nil {
			m.logger.Warn("archive put failed", zap.String("game_id", gameID), zap.Error(err))
		}
	}

	m.bus.PublishGame(gameID, eventbus.Event{
		Kind:   eventbus.GameDeleted,
		GameID: gameID,
	})
	return nil
}

// ValidGameID reports whether id is a well-formed UUID, letting
// transports reject an obviously malformed game id before it ever
// reaches the map lock.
func ValidGameID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
