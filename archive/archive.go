// Package archive persists finished games after the session manager
// removes them from memory (spec §4.3 delete_game). It is append-only;
// its own concurrency is its own concern (spec §5).
package archive

import (
	"time"

	"github.com/checkai-srv/checkai/game"
)

// Record is the archived form of one finished game: its final snapshot
// plus a PGN rendering for external tools.
type Record struct {
	GameID     string        `json:"game_id"`
	ArchivedAt time.Time     `json:"archived_at"`
	View       game.GameView `json:"view"`
	PGN        string        `json:"pgn"`
}

// Store persists and retrieves archived games (spec §6 archive_put,
// archive_list, archive_replay).
type Store interface {
	// Put archives a finished game. Called once per game, from
	// session.Manager.DeleteGame, after the game has reached a terminal
	// state.
	Put(rec Record) error

	// List returns every archived game's id and archival time, newest
	// first.
	List() ([]Summary, error)

	// Replay returns the full archived record for gameID, or an error
	// implementing NotFound if absent.
	Replay(gameID string) (Record, error)

	// Close releases any resources held by the store.
	Close() error
}

// Summary is one entry of Store.List.
type Summary struct {
	GameID     string    `json:"game_id"`
	ArchivedAt time.Time `json:"archived_at"`
	Result     *string   `json:"result"`
}

// ErrNotFound is returned by Replay when no record exists for the given
// game id.
type ErrNotFound struct {
	GameID string
}

func (e *ErrNotFound) Error() string {
	return "archive: no record for game " + e.GameID
}
