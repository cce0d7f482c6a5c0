package game

// GameResult is the outcome of a finished game.
type GameResult string

const (
	WhiteWins GameResult = "WhiteWins"
	BlackWins GameResult = "BlackWins"
	Draw      GameResult = "Draw"
)

// EndReason names why a game reached a terminal state.
type EndReason string

const (
	Checkmate            EndReason = "Checkmate"
	Stalemate            EndReason = "Stalemate"
	ThreefoldRepetition  EndReason = "ThreefoldRepetition"
	FivefoldRepetition   EndReason = "FivefoldRepetition"
	FiftyMoveRule        EndReason = "FiftyMoveRule"
	SeventyFiveMoveRule  EndReason = "SeventyFiveMoveRule"
	InsufficientMaterial EndReason = "InsufficientMaterial"
	Resignation          EndReason = "Resignation"
	DrawAgreement        EndReason = "DrawAgreement"
)

// Outcome pairs a GameResult with the EndReason that produced it.
type Outcome struct {
	Result GameResult
	Reason EndReason
}

// ActionKind is the non-move action a client may submit.
type ActionKind string

const (
	ActionResign    ActionKind = "resign"
	ActionOfferDraw ActionKind = "offer_draw"
	ActionClaimDraw ActionKind = "claim_draw"
)

// ClaimReason names the draw condition a claim_draw action asserts.
type ClaimReason string

const (
	ClaimThreefoldRepetition ClaimReason = "threefold_repetition"
	ClaimFiftyMoveRule       ClaimReason = "fifty_move_rule"
)

// Action is the decoded form of the action-request JSON (spec §6).
type Action struct {
	Kind   ActionKind
	Reason ClaimReason // only meaningful when Kind == ActionClaimDraw
}
