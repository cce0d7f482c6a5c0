// Package movegen generates legal chess moves for a position. It is
// stateless and total: every call returns a (possibly empty) move list
// and never errors, per the contract in the move-generator spec.
package movegen

import (
	"sort"

	"github.com/checkai-srv/checkai/board"
)

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

var promotionPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

// LegalMoves returns every move the side to move may legally play, sorted
// by From, then To, then promotion piece. Empty iff the side has no legal
// move (checkmate or stalemate).
func LegalMoves(pos board.Position) []board.Move {
	pseudo := pseudoLegalMoves(pos)
	legal := make([]board.Move, 0, len(pseudo))
	opponent := pos.SideToMove.Opponent()

	for _, mv := range pseudo {
		next := pos.Apply(mv)
		kingSq := next.Board.KingSquare(pos.SideToMove)
		if !IsSquareAttackedBy(&next.Board, kingSq, opponent) {
			legal = append(legal, mv)
		}
	}

	sort.Slice(legal, func(i, j int) bool { return legal[i].Less(legal[j]) })
	return legal
}

// IsInCheck reports whether the side to move's king is currently attacked.
func IsInCheck(pos board.Position) bool {
	kingSq := pos.Board.KingSquare(pos.SideToMove)
	return IsSquareAttackedBy(&pos.Board, kingSq, pos.SideToMove.Opponent())
}

// HasLegalEnPassantCapture reports whether at least one pseudo-legal
// en-passant capture from the current en-passant target survives the
// self-check filter. Used to trim the repetition key per the FIDE
// wording: the en-passant right only matters when it is actually
// exercisable.
func HasLegalEnPassantCapture(pos board.Position) bool {
	if pos.EnPassant == board.NoSquare {
		return false
	}
	for _, mv := range LegalMoves(pos) {
		if mv.To == pos.EnPassant {
			moved := pos.Board.At(mv.From)
			if moved.Piece == board.Pawn {
				return true
			}
		}
	}
	return false
}

// PseudoLegalMoves enumerates every move that is legal by piece-movement
// rules alone, without filtering for self-check. Exported so callers can
// distinguish "the pattern is right but it leaves the king in check" from
// other illegal-move reasons.
func PseudoLegalMoves(pos board.Position) []board.Move {
	return pseudoLegalMoves(pos)
}

// pseudoLegalMoves enumerates every move that is legal by piece-movement
// rules alone, without filtering for self-check.
func pseudoLegalMoves(pos board.Position) []board.Move {
	var moves []board.Move
	side := pos.SideToMove

	for sq := board.Square(0); sq < 64; sq++ {
		cp := pos.Board.At(sq)
		if cp.IsEmpty() || cp.Color != side {
			continue
		}
		switch cp.Piece {
		case board.Pawn:
			moves = append(moves, pawnMoves(pos, sq)...)
		case board.Knight:
			moves = append(moves, stepMoves(&pos.Board, sq, side, knightOffsets[:])...)
		case board.Bishop:
			moves = append(moves, slideMoves(&pos.Board, sq, side, bishopDirs[:])...)
		case board.Rook:
			moves = append(moves, slideMoves(&pos.Board, sq, side, rookDirs[:])...)
		case board.Queen:
			moves = append(moves, slideMoves(&pos.Board, sq, side, bishopDirs[:])...)
			moves = append(moves, slideMoves(&pos.Board, sq, side, rookDirs[:])...)
		case board.King:
			moves = append(moves, stepMoves(&pos.Board, sq, side, kingOffsets[:])...)
			moves = append(moves, castlingMoves(pos, sq)...)
		}
	}
	return moves
}

// stepMoves generates single-step moves (knight, king) from sq using the
// given (file, rank) offsets, allowing a destination that is empty or
// holds an enemy piece.
func stepMoves(b *board.Board, sq board.Square, side board.Color, offsets [][2]int) []board.Move {
	var moves []board.Move
	file, rank := sq.File(), sq.Rank()
	for _, off := range offsets {
		nf, nr := file+off[0], rank+off[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		to := board.NewSquare(nf, nr)
		occ := b.At(to)
		if occ.IsEmpty() || occ.Color != side {
			moves = append(moves, board.Move{From: sq, To: to, Promotion: board.NoPiece})
		}
	}
	return moves
}

// slideMoves generates ray-slide moves (bishop, rook, queen) from sq in
// the given directions, stopping at the first occupied square and
// including it iff it holds an enemy piece.
func slideMoves(b *board.Board, sq board.Square, side board.Color, dirs [][2]int) []board.Move {
	var moves []board.Move
	file, rank := sq.File(), sq.Rank()
	for _, dir := range dirs {
		nf, nr := file+dir[0], rank+dir[1]
		for nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
			to := board.NewSquare(nf, nr)
			occ := b.At(to)
			if occ.IsEmpty() {
				moves = append(moves, board.Move{From: sq, To: to, Promotion: board.NoPiece})
			} else {
				if occ.Color != side {
					moves = append(moves, board.Move{From: sq, To: to, Promotion: board.NoPiece})
				}
				break
			}
			nf += dir[0]
			nr += dir[1]
		}
	}
	return moves
}

// pawnMoves generates forward pushes, diagonal captures, en-passant
// captures, and the four promotion variants for a pawn on sq.
func pawnMoves(pos board.Position, sq board.Square) []board.Move {
	var moves []board.Move
	side := pos.SideToMove
	file, rank := sq.File(), sq.Rank()

	dir := 1
	startRank := 1
	lastRank := 7
	if side == board.Black {
		dir = -1
		startRank = 6
		lastRank = 0
	}

	addForward := func(to board.Square) {
		if to.Rank() == lastRank {
			for _, promo := range promotionPieces {
				moves = append(moves, board.Move{From: sq, To: to, Promotion: promo})
			}
		} else {
			moves = append(moves, board.Move{From: sq, To: to, Promotion: board.NoPiece})
		}
	}

	oneRank := rank + dir
	if oneRank >= 0 && oneRank <= 7 {
		oneSq := board.NewSquare(file, oneRank)
		if pos.Board.At(oneSq).IsEmpty() {
			addForward(oneSq)
			if rank == startRank {
				twoSq := board.NewSquare(file, rank+2*dir)
				if pos.Board.At(twoSq).IsEmpty() {
					moves = append(moves, board.Move{From: sq, To: twoSq, Promotion: board.NoPiece})
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		nf := file + df
		nr := rank + dir
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		to := board.NewSquare(nf, nr)
		occ := pos.Board.At(to)
		if !occ.IsEmpty() && occ.Color != side {
			addForward(to)
		} else if to == pos.EnPassant && pos.EnPassant != board.NoSquare {
			moves = append(moves, board.Move{From: sq, To: to, Promotion: board.NoPiece})
		}
	}

	return moves
}

// castlingMoves adds O-O / O-O-O king moves when every FIDE precondition
// holds: the right is still available, the squares between king and rook
// are empty, the king is not in check, and the king neither passes
// through nor lands on an attacked square. The rook itself may pass over
// or land on an attacked square.
func castlingMoves(pos board.Position, kingSq board.Square) []board.Move {
	var moves []board.Move
	side := pos.SideToMove
	opponent := side.Opponent()
	rank := 0
	if side == board.Black {
		rank = 7
	}
	if kingSq != board.NewSquare(4, rank) {
		return nil
	}
	if IsSquareAttackedBy(&pos.Board, kingSq, opponent) {
		return nil
	}

	kingsideRight := pos.Castling.WhiteKingside
	queensideRight := pos.Castling.WhiteQueenside
	if side == board.Black {
		kingsideRight = pos.Castling.BlackKingside
		queensideRight = pos.Castling.BlackQueenside
	}

	if kingsideRight {
		f1 := board.NewSquare(5, rank)
		g1 := board.NewSquare(6, rank)
		if pos.Board.At(f1).IsEmpty() && pos.Board.At(g1).IsEmpty() &&
			!IsSquareAttackedBy(&pos.Board, f1, opponent) &&
			!IsSquareAttackedBy(&pos.Board, g1, opponent) {
			moves = append(moves, board.Move{From: kingSq, To: g1, Promotion: board.NoPiece})
		}
	}
	if queensideRight {
		d1 := board.NewSquare(3, rank)
		c1 := board.NewSquare(2, rank)
		b1 := board.NewSquare(1, rank)
		if pos.Board.At(d1).IsEmpty() && pos.Board.At(c1).IsEmpty() && pos.Board.At(b1).IsEmpty() &&
			!IsSquareAttackedBy(&pos.Board, d1, opponent) &&
			!IsSquareAttackedBy(&pos.Board, c1, opponent) {
			moves = append(moves, board.Move{From: kingSq, To: c1, Promotion: board.NoPiece})
		}
	}
	return moves
}

// IsSquareAttackedBy reports whether any piece of color `by` pseudo-attacks
// sq. It uses piece movement rules without the self-check filter, so it
// never recurses into LegalMoves.
func IsSquareAttackedBy(b *board.Board, sq board.Square, by board.Color) bool {
	// Pawns attack diagonally forward only.
	pawnDir := -1
	if by == board.White {
		pawnDir = 1
	}
	file, rank := sq.File(), sq.Rank()
	for _, df := range [2]int{-1, 1} {
		nf := file + df
		nr := rank - pawnDir
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		occ := b.At(board.NewSquare(nf, nr))
		if occ.Piece == board.Pawn && occ.Color == by {
			return true
		}
	}

	for _, off := range knightOffsets {
		nf, nr := file+off[0], rank+off[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		occ := b.At(board.NewSquare(nf, nr))
		if occ.Piece == board.Knight && occ.Color == by {
			return true
		}
	}

	for _, off := range kingOffsets {
		nf, nr := file+off[0], rank+off[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		occ := b.At(board.NewSquare(nf, nr))
		if occ.Piece == board.King && occ.Color == by {
			return true
		}
	}

	if slideAttacks(b, sq, bishopDirs[:], by, board.Bishop, board.Queen) {
		return true
	}
	if slideAttacks(b, sq, rookDirs[:], by, board.Rook, board.Queen) {
		return true
	}

	return false
}

// slideAttacks walks each direction from sq until it hits the board edge
// or an occupied square, reporting whether the first occupied square
// holds one of the attacking piece kinds owned by `by`.
func slideAttacks(b *board.Board, sq board.Square, dirs [][2]int, by board.Color, kinds ...board.Piece) bool {
	file, rank := sq.File(), sq.Rank()
	for _, dir := range dirs {
		nf, nr := file+dir[0], rank+dir[1]
		for nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
			occ := b.At(board.NewSquare(nf, nr))
			if !occ.IsEmpty() {
				if occ.Color == by {
					for _, k := range kinds {
						if occ.Piece == k {
							return true
						}
					}
				}
				break
			}
			nf += dir[0]
			nr += dir[1]
		}
	}
	return false
}
