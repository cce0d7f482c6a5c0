package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/checkerr"
)

func mustMove(t *testing.T, g *Game, from, to string) MoveOutcome {
	t.Helper()
	fromSq, ok1 := board.ParseSquare(from)
	toSq, ok2 := board.ParseSquare(to)
	require.True(t, ok1 && ok2)
	out, err := g.ApplyMove(board.Move{From: fromSq, To: toSq, Promotion: board.NoPiece})
	require.NoError(t, err)
	return out
}

// TestScholarsMate replays 1.e4 e5 2.Qh5 Nc6 3.Bc4 Nf6?? 4.Qxf7#, the
// textbook four-move checkmate, and checks the game ends correctly.
func TestScholarsMate(t *testing.T) {
	g := New()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "d1", "h5")
	mustMove(t, g, "b8", "c6")
	mustMove(t, g, "f1", "c4")
	mustMove(t, g, "g8", "f6")
	out := mustMove(t, g, "h5", "f7")

	assert.True(t, out.IsOver)
	assert.Equal(t, "Qxf7#", out.SAN)
	require.NotNil(t, out.Result)
	assert.Equal(t, string(WhiteWins), *out.Result)
	require.NotNil(t, out.EndReason)
	assert.Equal(t, string(Checkmate), *out.EndReason)
}

// TestFoolsMate plays the fastest possible checkmate, a win for Black.
func TestFoolsMate(t *testing.T) {
	g := New()
	mustMove(t, g, "f2", "f3")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g2", "g4")
	out := mustMove(t, g, "d8", "h4")

	assert.True(t, out.IsOver)
	require.NotNil(t, out.Result)
	assert.Equal(t, string(BlackWins), *out.Result)
	require.NotNil(t, out.EndReason)
	assert.Equal(t, string(Checkmate), *out.EndReason)
}

// TestIllegalMoveRejectedWithReason checks that a structurally malformed
// pawn move is rejected with the "wrong pattern" reason rather than applied.
func TestIllegalMoveRejectedWithReason(t *testing.T) {
	g := New()
	// e2-e5 is not a legal pawn move (wrong pattern: two-square jump only
	// from the second rank, and only to an empty square one or two ranks
	// ahead).
	from, _ := board.ParseSquare("e2")
	to, _ := board.ParseSquare("e5")
	_, err := g.ApplyMove(board.Move{From: from, To: to, Promotion: board.NoPiece})
	require.Error(t, err)
	cerr, ok := err.(*checkerr.Error)
	require.True(t, ok)
	assert.Equal(t, checkerr.CodeIllegalMove, cerr.Code)
	assert.Equal(t, "wrong pattern", cerr.Reason)
}

func TestMovingOpponentPieceRejected(t *testing.T) {
	g := New()
	from, _ := board.ParseSquare("e7")
	to, _ := board.ParseSquare("e5")
	_, err := g.ApplyMove(board.Move{From: from, To: to, Promotion: board.NoPiece})
	require.Error(t, err)
	cerr := err.(*checkerr.Error)
	assert.Equal(t, "not your piece", cerr.Reason)
}

// TestThreefoldRepetitionClaimable shuffles knights back and forth to
// reach the starting position three times, then checks the draw claim
// succeeds only once the repetition has actually occurred.
func TestThreefoldRepetitionClaimable(t *testing.T) {
	g := New()

	_, err := g.ApplyAction(Action{Kind: ActionClaimDraw, Reason: ClaimThreefoldRepetition})
	require.Error(t, err)
	assert.True(t, checkerr.Is(err, checkerr.CodeIneligibleDrawClaim))

	shuffle := [][2]string{
		{"g1", "f3"}, {"g8", "f6"},
		{"f3", "g1"}, {"f6", "g8"},
		{"g1", "f3"}, {"g8", "f6"},
		{"f3", "g1"}, {"f6", "g8"},
	}
	for _, mv := range shuffle {
		mustMove(t, g, mv[0], mv[1])
	}

	out, err := g.ApplyAction(Action{Kind: ActionClaimDraw, Reason: ClaimThreefoldRepetition})
	require.NoError(t, err)
	assert.True(t, out.IsOver)
	require.NotNil(t, out.Result)
	assert.Equal(t, string(Draw), *out.Result)
	require.NotNil(t, out.EndReason)
	assert.Equal(t, string(ThreefoldRepetition), *out.EndReason)
}

// TestFivefoldRepetitionIsAutomatic repeats the same shuffle until the
// fifth occurrence, which must end the game without any claim.
func TestFivefoldRepetitionIsAutomatic(t *testing.T) {
	g := New()
	shuffle := [][2]string{
		{"g1", "f3"}, {"g8", "f6"},
		{"f3", "g1"}, {"f6", "g8"},
	}
	for round := 0; round < 4 && !g.IsOver(); round++ {
		for _, mv := range shuffle {
			if g.IsOver() {
				break
			}
			mustMove(t, g, mv[0], mv[1])
		}
	}

	require.True(t, g.IsOver())
	out := g.Outcome()
	require.NotNil(t, out)
	assert.Equal(t, Draw, out.Result)
	assert.Equal(t, FivefoldRepetition, out.Reason)
}

// TestDrawOfferRequiresBothSides checks that a single offer_draw does not
// end the game, but a second offer from the opponent does.
func TestDrawOfferRequiresBothSides(t *testing.T) {
	g := New()
	mustMove(t, g, "e2", "e4")

	out, err := g.ApplyAction(Action{Kind: ActionOfferDraw})
	require.NoError(t, err)
	assert.False(t, out.IsOver)

	mustMove(t, g, "e7", "e5")

	out, err = g.ApplyAction(Action{Kind: ActionOfferDraw})
	require.NoError(t, err)
	assert.True(t, out.IsOver)
	require.NotNil(t, out.Result)
	assert.Equal(t, string(Draw), *out.Result)
	require.NotNil(t, out.EndReason)
	assert.Equal(t, string(DrawAgreement), *out.EndReason)
}

// TestResignation checks that resigning ends the game in favor of the
// opponent of the side to move.
func TestResignation(t *testing.T) {
	g := New()
	out, err := g.ApplyAction(Action{Kind: ActionResign})
	require.NoError(t, err)
	assert.True(t, out.IsOver)
	require.NotNil(t, out.Result)
	assert.Equal(t, string(BlackWins), *out.Result)
}

// TestGameAlreadyOverRejectsFurtherMutation verifies a terminal game
// rejects both further moves and further actions.
func TestGameAlreadyOverRejectsFurtherMutation(t *testing.T) {
	g := New()
	_, err := g.ApplyAction(Action{Kind: ActionResign})
	require.NoError(t, err)

	_, err = g.ApplyMove(g.LegalMoves()[0])
	require.Error(t, err)
	assert.True(t, checkerr.Is(err, checkerr.CodeGameAlreadyOver))

	_, err = g.ApplyAction(Action{Kind: ActionOfferDraw})
	require.Error(t, err)
	assert.True(t, checkerr.Is(err, checkerr.CodeGameAlreadyOver))
}

// TestSnapshotReflectsHistory checks the move-history JSON grows by one
// entry per applied move and preserves SAN text.
func TestSnapshotReflectsHistory(t *testing.T) {
	g := New()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "c7", "c5")

	view := g.Snapshot()
	require.Len(t, view.MoveHistory, 2)
	assert.Equal(t, "e4", view.MoveHistory[0].Notation)
	assert.Equal(t, "c5", view.MoveHistory[1].Notation)
	assert.False(t, view.IsOver)
}

func TestExportPGNIncludesResult(t *testing.T) {
	g := New()
	mustMove(t, g, "e2", "e4")
	_, err := g.ApplyAction(Action{Kind: ActionResign})
	require.NoError(t, err)

	pgn := g.ExportPGN()
	assert.Contains(t, pgn, "[Result \"1-0\"]")
	assert.Contains(t, pgn, "1. e4")
}
