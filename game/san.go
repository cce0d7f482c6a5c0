package game

import (
	"strings"

	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/movegen"
)

// encodeSAN renders mv, played from before, in Standard Algebraic
// Notation. legalBefore is before's legal-move list, used for
// disambiguation; after is the resulting position, used to append the
// check/checkmate suffix.
func encodeSAN(before board.Position, mv board.Move, legalBefore []board.Move, after board.Position) string {
	moved := before.Board.At(mv.From)

	if moved.Piece == board.King && abs(int(mv.To)-int(mv.From)) == 2 {
		san := "O-O"
		if mv.To.File() == 2 {
			san = "O-O-O"
		}
		return san + checkSuffix(after)
	}

	captured := before.Board.At(mv.To)
	isEnPassant := moved.Piece == board.Pawn && before.EnPassant != board.NoSquare && mv.To == before.EnPassant && captured.IsEmpty()
	isCapture := !captured.IsEmpty() || isEnPassant

	var sb strings.Builder
	if moved.Piece != board.Pawn {
		sb.WriteString(moved.Piece.Letter())
		sb.WriteString(disambiguate(before, mv, legalBefore, moved))
	} else if isCapture {
		sb.WriteByte(byte('a' + mv.From.File()))
	}

	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(mv.To.String())

	if mv.Promotion != board.NoPiece {
		sb.WriteByte('=')
		sb.WriteString(mv.Promotion.Letter())
	}

	sb.WriteString(checkSuffix(after))
	return sb.String()
}

// disambiguate returns the minimal disambiguation needed among other
// legal moves of the same piece kind to the same destination: prefer the
// origin file, then the origin rank, then both (spec §4.2, §9).
func disambiguate(before board.Position, mv board.Move, legalBefore []board.Move, moved board.ColoredPiece) string {
	var sameFile, sameRank bool
	found := false

	for _, other := range legalBefore {
		if other.From == mv.From || other.To != mv.To {
			continue
		}
		occ := before.Board.At(other.From)
		if occ.Piece != moved.Piece || occ.Color != moved.Color {
			continue
		}
		found = true
		if other.From.File() == mv.From.File() {
			sameFile = true
		}
		if other.From.Rank() == mv.From.Rank() {
			sameRank = true
		}
	}

	if !found {
		return ""
	}
	switch {
	case !sameFile:
		return string(byte('a' + mv.From.File()))
	case !sameRank:
		return string(byte('1' + mv.From.Rank()))
	default:
		return mv.From.String()
	}
}

// checkSuffix returns "#" if the side to move in after has no legal move
// while in check, "+" if merely in check, or "" otherwise.
func checkSuffix(after board.Position) string {
	if !movegen.IsInCheck(after) {
		return ""
	}
	if len(movegen.LegalMoves(after)) == 0 {
		return "#"
	}
	return "+"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
