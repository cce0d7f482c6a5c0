package game

import "github.com/checkai-srv/checkai/board"

type minor struct {
	piece board.Piece
	sq    board.Square
}

// isInsufficientMaterial reports a forced draw by insufficient material:
// no pawns, rooks, or queens remain, and either both sides are bare kings,
// one side has a lone king against a king-and-minor, or both sides have a
// king and same-colored-square bishop.
func isInsufficientMaterial(pos board.Position) bool {
	var white, black []minor

	for sq := board.Square(0); sq < 64; sq++ {
		cp := pos.Board.At(sq)
		if cp.IsEmpty() || cp.Piece == board.King {
			continue
		}
		switch cp.Piece {
		case board.Pawn, board.Rook, board.Queen:
			return false
		case board.Bishop, board.Knight:
			m := minor{piece: cp.Piece, sq: sq}
			if cp.Color == board.White {
				white = append(white, m)
			} else {
				black = append(black, m)
			}
		}
	}

	total := len(white) + len(black)
	switch {
	case total == 0:
		return true // K vs K
	case total == 1:
		return true // K+minor vs K
	case len(white) == 1 && len(black) == 1 &&
		white[0].piece == board.Bishop && black[0].piece == board.Bishop:
		return white[0].sq.IsLight() == black[0].sq.IsLight()
	default:
		return false
	}
}
