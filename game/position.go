package game

import (
	"strings"

	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/movegen"
)

// PositionKey is a stable fingerprint of a position used for repetition
// detection. Two positions compare equal iff a player has, in both,
// exactly the same legal moves available.
//
// Stored as a simplified-FEN string: piece placement, side to move,
// castling rights, and the en-passant target — trimmed to "-" unless at
// least one legal en-passant capture is actually available, per the
// stricter FIDE wording (an en-passant right that cannot be exercised
// does not distinguish the position from one without it).
type PositionKey string

// newPositionKey computes the PositionKey for pos.
func newPositionKey(pos board.Position) PositionKey {
	ep := pos.EnPassant
	if ep != board.NoSquare && !movegen.HasLegalEnPassantCapture(pos) {
		ep = board.NoSquare
	}

	var sb strings.Builder
	sb.Grow(64)
	sb.WriteString(pos.Board.PlacementFEN())
	sb.WriteByte(' ')
	if pos.SideToMove == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(pos.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(ep.String())
	return PositionKey(sb.String())
}
