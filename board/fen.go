package board

import (
	"strconv"
	"strings"
)

// PlacementFEN renders the piece-placement field of FEN: eight
// slash-separated ranks, rank 8 first, run-length-encoded empty squares.
func (b *Board) PlacementFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			cp := b.At(NewSquare(file, rank))
			if cp.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(cp.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// String renders the castling-rights field, "-" if none remain.
func (c CastlingRights) String() string {
	var sb strings.Builder
	if c.WhiteKingside {
		sb.WriteByte('K')
	}
	if c.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if c.BlackKingside {
		sb.WriteByte('k')
	}
	if c.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// sideFEN renders the active-color field.
func sideFEN(c Color) string {
	if c == White {
		return "w"
	}
	return "b"
}

// FEN renders the full position in standard FEN, including the halfmove
// clock and fullmove number. The en-passant field reflects the raw
// EnPassant target as stored on the Position (callers that need the
// FIDE-trimmed repetition key use a PositionKey from the game package
// instead).
func (p Position) FEN() string {
	return strings.Join([]string{
		p.Board.PlacementFEN(),
		sideFEN(p.SideToMove),
		p.Castling.String(),
		p.EnPassant.String(),
		strconv.Itoa(p.HalfmoveClock),
		strconv.Itoa(p.FullmoveNumber),
	}, " ")
}

// Render draws the board as a terminal-friendly ASCII grid: one row per
// rank, rank 8 on top, file letters along the bottom, "." for empty
// squares. Used by the /board endpoint and the WebSocket get_board command
// (spec §4.5).
func (b *Board) Render() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			cp := b.At(NewSquare(file, rank))
			if cp.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteString(cp.Letter())
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("a b c d e f g h\n")
	return sb.String()
}
