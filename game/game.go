// Package game implements one chess game's state: current position, move
// history, position history for repetition, draw-offer state, and the
// terminal result once the game ends. A Game mutates only through
// ApplyMove and ApplyAction; once terminal it rejects every further
// mutation with checkerr.GameAlreadyOver. Not safe for concurrent use —
// the session manager serializes access with a per-game lock (spec §5).
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/checkerr"
	"github.com/checkai-srv/checkai/movegen"
)

// Game owns one chess game's full state.
type Game struct {
	ID        string
	CreatedAt time.Time

	position    board.Position
	legalMoves  []board.Move
	history     []HistoryEntry
	repetitions *repetitionTracker
	drawOffered [2]bool // indexed by board.Color
	terminal    *Outcome
}

// New returns a game in the FIDE starting position, empty history, and
// non-terminal.
func New() *Game {
	pos := board.Starting()
	g := &Game{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		position:  pos,
	}
	g.legalMoves = movegen.LegalMoves(pos)
	g.repetitions = newRepetitionTracker(newPositionKey(pos))
	return g
}

// LegalMoves returns every move the side to move may legally play, in the
// deterministic order movegen guarantees.
func (g *Game) LegalMoves() []board.Move {
	return g.legalMoves
}

// IsOver reports whether the game has reached a terminal state.
func (g *Game) IsOver() bool {
	return g.terminal != nil
}

// isLegal reports whether mv is in the current legal-move set.
func (g *Game) isLegal(mv board.Move) bool {
	for _, lm := range g.legalMoves {
		if lm == mv {
			return true
		}
	}
	return false
}

// ApplyMove validates mv against the current legal-move set and, if
// legal, applies it: relocates the piece, resolves captures (including en
// passant), promotes, moves the castling rook, updates castling rights
// and the en-passant target, advances the halfmove/fullmove counters, and
// flips the side to move. It then detects a new terminal state in the
// order specified by spec §4.2: checkmate/stalemate, insufficient
// material, fivefold repetition, seventy-five-move rule.
func (g *Game) ApplyMove(mv board.Move) (MoveOutcome, error) {
	if g.terminal != nil {
		return MoveOutcome{}, checkerr.GameAlreadyOver(g.ID)
	}
	if !g.isLegal(mv) {
		return MoveOutcome{}, checkerr.IllegalMove(g.classifyIllegalMove(mv))
	}

	before := g.position
	mover := before.SideToMove
	moveNumber := before.FullmoveNumber

	after := before.Apply(mv)
	san := encodeSAN(before, mv, g.legalMoves, after)

	g.history = append(g.history, HistoryEntry{
		Move:       mv,
		SAN:        san,
		Side:       mover,
		MoveNumber: moveNumber,
		PriorKey:   g.repetitions.keys[len(g.repetitions.keys)-1],
	})

	g.position = after
	g.legalMoves = movegen.LegalMoves(after)
	g.drawOffered[mover] = false

	repCount := g.repetitions.push(newPositionKey(after))
	g.detectTerminal(repCount)

	return g.moveOutcome(mv, san), nil
}

// classifyIllegalMove explains why mv is not in the legal-move set,
// matching the reason vocabulary in spec §7.
func (g *Game) classifyIllegalMove(mv board.Move) string {
	occ := g.position.Board.At(mv.From)
	if occ.IsEmpty() || occ.Color != g.position.SideToMove {
		return "not your piece"
	}

	landsOnLastRank := (occ.Piece == board.Pawn) &&
		((g.position.SideToMove == board.White && mv.To.Rank() == 7) ||
			(g.position.SideToMove == board.Black && mv.To.Rank() == 0))
	if occ.Piece == board.Pawn && landsOnLastRank && mv.Promotion == board.NoPiece {
		return "missing promotion"
	}
	if mv.Promotion != board.NoPiece && !(occ.Piece == board.Pawn && landsOnLastRank) {
		return "promotion on non-pawn move"
	}

	for _, pm := range movegen.PseudoLegalMoves(g.position) {
		if pm == mv {
			return "leaves king in check"
		}
	}
	return "wrong pattern"
}

// ApplyAction dispatches a non-move action (spec §4.2).
func (g *Game) ApplyAction(action Action) (ActionOutcome, error) {
	if g.terminal != nil {
		return ActionOutcome{}, checkerr.GameAlreadyOver(g.ID)
	}

	switch action.Kind {
	case ActionResign:
		winner := BlackWins
		if g.position.SideToMove == board.Black {
			winner = WhiteWins
		}
		g.terminal = &Outcome{Result: winner, Reason: Resignation}

	case ActionOfferDraw:
		side := g.position.SideToMove
		g.drawOffered[side] = true
		if g.drawOffered[side.Opponent()] {
			g.terminal = &Outcome{Result: Draw, Reason: DrawAgreement}
		}

	case ActionClaimDraw:
		switch action.Reason {
		case ClaimThreefoldRepetition:
			if g.repetitions.current() < 3 {
				return ActionOutcome{}, checkerr.IneligibleDrawClaim("threefold repetition has not occurred")
			}
			g.terminal = &Outcome{Result: Draw, Reason: ThreefoldRepetition}
		case ClaimFiftyMoveRule:
			if g.position.HalfmoveClock < 100 {
				return ActionOutcome{}, checkerr.IneligibleDrawClaim("fifty-move rule threshold not reached")
			}
			g.terminal = &Outcome{Result: Draw, Reason: FiftyMoveRule}
		default:
			return ActionOutcome{}, checkerr.MalformedInput("unknown claim_draw reason")
		}

	default:
		return ActionOutcome{}, checkerr.MalformedInput("unknown action")
	}

	return g.actionOutcome(action), nil
}

// detectTerminal applies spec §4.2's terminal-detection order after a
// move has just been applied. repCount is the occurrence count of the
// resulting position's PositionKey.
func (g *Game) detectTerminal(repCount int) {
	if len(g.legalMoves) == 0 {
		if movegen.IsInCheck(g.position) {
			winner := WhiteWins
			if g.position.SideToMove == board.White {
				// side to move is in checkmate, so the mover (who just
				// moved, the opposite color) wins.
				winner = BlackWins
			}
			g.terminal = &Outcome{Result: winner, Reason: Checkmate}
		} else {
			g.terminal = &Outcome{Result: Draw, Reason: Stalemate}
		}
		return
	}
	if isInsufficientMaterial(g.position) {
		g.terminal = &Outcome{Result: Draw, Reason: InsufficientMaterial}
		return
	}
	if repCount >= 5 {
		g.terminal = &Outcome{Result: Draw, Reason: FivefoldRepetition}
		return
	}
	if g.position.HalfmoveClock >= 150 {
		g.terminal = &Outcome{Result: Draw, Reason: SeventyFiveMoveRule}
	}
}

func (g *Game) moveOutcome(mv board.Move, san string) MoveOutcome {
	return MoveOutcome{
		GameID:    g.ID,
		Move:      MoveToJSON(mv),
		SAN:       san,
		State:     g.boardState(),
		IsCheck:   movegen.IsInCheck(g.position),
		IsOver:    g.terminal != nil,
		Result:    resultString(g.terminal),
		EndReason: endReasonString(g.terminal),
	}
}

func (g *Game) actionOutcome(action Action) ActionOutcome {
	return ActionOutcome{
		GameID:    g.ID,
		Action:    string(action.Kind),
		State:     g.boardState(),
		IsOver:    g.terminal != nil,
		Result:    resultString(g.terminal),
		EndReason: endReasonString(g.terminal),
	}
}

func (g *Game) boardState() BoardState {
	turn := "white"
	if g.position.SideToMove == board.Black {
		turn = "black"
	}
	return BoardState{
		Board:           boardMap(g.position.Board),
		Turn:            turn,
		Castling:        castlingToJSON(g.position.Castling),
		EnPassant:       enPassantString(g.position.EnPassant),
		HalfmoveClock:   g.position.HalfmoveClock,
		FullmoveNumber:  g.position.FullmoveNumber,
		PositionHistory: g.repetitions.history(),
	}
}

// Snapshot returns an immutable, JSON-serializable view of the game.
func (g *Game) Snapshot() GameView {
	history := make([]MoveHistoryJSON, len(g.history))
	for i, h := range g.history {
		side := "white"
		if h.Side == board.Black {
			side = "black"
		}
		history[i] = MoveHistoryJSON{
			MoveNumber: h.MoveNumber,
			Side:       side,
			Notation:   h.SAN,
			MoveJSON:   MoveToJSON(h.Move),
		}
	}

	return GameView{
		GameID:         g.ID,
		State:          g.boardState(),
		IsCheck:        movegen.IsInCheck(g.position),
		IsOver:         g.terminal != nil,
		Result:         resultString(g.terminal),
		EndReason:      endReasonString(g.terminal),
		MoveHistory:    history,
		LegalMoveCount: len(g.legalMoves),
	}
}

// Result and reason accessors used by the session manager's list_games
// summary, which needs them without building a full snapshot.

// SideToMove returns the color to move.
func (g *Game) SideToMove() board.Color { return g.position.SideToMove }

// FullmoveNumber returns the current fullmove counter.
func (g *Game) FullmoveNumber() int { return g.position.FullmoveNumber }

// Outcome returns the terminal outcome, or nil if the game is still
// active.
func (g *Game) Outcome() *Outcome { return g.terminal }
