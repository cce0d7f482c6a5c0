package board

// Apply returns the Position that results from playing mv against p. It is
// total over any Move whose From/To/Promotion describe a structurally
// sane move (the caller — movegen's self-check filter, or Game.ApplyMove —
// is responsible for legality); Apply itself does not validate legality,
// it only carries out the side effects spec'd for a move:
// piece relocation, captures (including en passant), promotion, castling
// rook movement, castling-rights bookkeeping, en-passant target tracking,
// the halfmove clock, the fullmove number, and the side to move.
func (p Position) Apply(mv Move) Position {
	next := p
	next.Board = p.Board // array copy

	moved := p.Board.At(mv.From)
	captured := p.Board.At(mv.To)
	isCapture := !captured.IsEmpty()

	isEnPassant := moved.Piece == Pawn && mv.To == p.EnPassant && p.EnPassant != NoSquare && captured.IsEmpty()
	isCastle := moved.Piece == King && abs(int(mv.To)-int(mv.From)) == 2

	next.Board.Set(mv.From, Empty)

	if isEnPassant {
		// The captured pawn sits on the moving pawn's origin rank, at the
		// destination file.
		capturedSq := NewSquare(mv.To.File(), mv.From.Rank())
		next.Board.Set(capturedSq, Empty)
		isCapture = true
	}

	placed := moved
	if mv.Promotion != NoPiece {
		placed = ColoredPiece{Color: moved.Color, Piece: mv.Promotion}
	}
	next.Board.Set(mv.To, placed)

	if isCastle {
		rank := mv.From.Rank()
		if mv.To.File() == 6 { // kingside
			next.Board.Set(NewSquare(7, rank), Empty)
			next.Board.Set(NewSquare(5, rank), ColoredPiece{Color: moved.Color, Piece: Rook})
		} else { // queenside
			next.Board.Set(NewSquare(0, rank), Empty)
			next.Board.Set(NewSquare(3, rank), ColoredPiece{Color: moved.Color, Piece: Rook})
		}
	}

	// Castling-rights bookkeeping.
	switch {
	case moved.Piece == King && moved.Color == White:
		next.Castling.WhiteKingside = false
		next.Castling.WhiteQueenside = false
	case moved.Piece == King && moved.Color == Black:
		next.Castling.BlackKingside = false
		next.Castling.BlackQueenside = false
	}
	clearRookRight(&next.Castling, mv.From)
	clearRookRight(&next.Castling, mv.To) // rook captured on its starting square

	// En-passant target: set iff this was a two-square pawn advance.
	next.EnPassant = NoSquare
	if moved.Piece == Pawn {
		delta := int(mv.To) - int(mv.From)
		if delta == 16 {
			next.EnPassant = mv.From + 8
		} else if delta == -16 {
			next.EnPassant = mv.From - 8
		}
	}

	if moved.Piece == Pawn || isCapture {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if p.SideToMove == Black {
		next.FullmoveNumber++
	}

	next.SideToMove = p.SideToMove.Opponent()

	return next
}

// clearRookRight clears the castling right tied to a rook's starting
// square, whether the rook moved off it or was captured on it. Rights are
// only ever cleared, never re-set.
func clearRookRight(c *CastlingRights, sq Square) {
	switch sq {
	case NewSquare(0, 0):
		c.WhiteQueenside = false
	case NewSquare(7, 0):
		c.WhiteKingside = false
	case NewSquare(0, 7):
		c.BlackQueenside = false
	case NewSquare(7, 7):
		c.BlackKingside = false
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
