package game

import "github.com/checkai-srv/checkai/board"

// HistoryEntry records one played halfmove: the move itself, its SAN
// rendering, which side played it, the fullmove number it belongs to, and
// the PositionKey of the position that existed before it was played.
type HistoryEntry struct {
	Move       board.Move
	SAN        string
	Side       board.Color
	MoveNumber int
	PriorKey   PositionKey
}

// MoveJSON is the wire form of a board.Move.
type MoveJSON struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Promotion *string `json:"promotion"`
}

// MoveToJSON converts a board.Move to its wire form: two-character
// algebraic squares and an uppercase promotion letter (spec §6).
func MoveToJSON(mv board.Move) MoveJSON {
	j := MoveJSON{From: mv.From.String(), To: mv.To.String()}
	if mv.Promotion != board.NoPiece {
		l := mv.Promotion.Letter()
		j.Promotion = &l
	}
	return j
}

// CastlingSideJSON is one side's castling availability.
type CastlingSideJSON struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

// CastlingJSON is the wire form of board.CastlingRights.
type CastlingJSON struct {
	White CastlingSideJSON `json:"white"`
	Black CastlingSideJSON `json:"black"`
}

func castlingToJSON(c board.CastlingRights) CastlingJSON {
	return CastlingJSON{
		White: CastlingSideJSON{Kingside: c.WhiteKingside, Queenside: c.WhiteQueenside},
		Black: CastlingSideJSON{Kingside: c.BlackKingside, Queenside: c.BlackQueenside},
	}
}

// BoardState is the wire form of board.Position plus the position-key
// history used by clients to reason about repetition.
type BoardState struct {
	Board           map[string]string `json:"board"`
	Turn            string            `json:"turn"`
	Castling        CastlingJSON      `json:"castling"`
	EnPassant       *string           `json:"en_passant"`
	HalfmoveClock   int               `json:"halfmove_clock"`
	FullmoveNumber  int               `json:"fullmove_number"`
	PositionHistory []string          `json:"position_history"`
}

func boardMap(b board.Board) map[string]string {
	out := make(map[string]string)
	for sq := board.Square(0); sq < 64; sq++ {
		cp := b.At(sq)
		if cp.IsEmpty() {
			continue
		}
		out[sq.String()] = cp.Letter()
	}
	return out
}

// Render rebuilds the occupied-squares-only wire board into a board.Board
// and renders it as the ASCII grid described by spec §4.5, shared by the
// REST /board endpoint and the WebSocket get_board command.
func (bs BoardState) Render() string {
	var b board.Board
	for sq := board.Square(0); sq < 64; sq++ {
		b.Set(sq, board.Empty)
	}
	for squareName, letter := range bs.Board {
		sq, ok := board.ParseSquare(squareName)
		if !ok {
			continue
		}
		cp, ok := board.ColoredPieceFromLetter(letter[0])
		if !ok {
			continue
		}
		b.Set(sq, cp)
	}
	return b.Render()
}

// MoveHistoryJSON is one entry of GameView.MoveHistory.
type MoveHistoryJSON struct {
	MoveNumber int      `json:"move_number"`
	Side       string   `json:"side"`
	Notation   string   `json:"notation"`
	MoveJSON   MoveJSON `json:"move_json"`
}

// GameView is the immutable, JSON-serializable response of snapshot()
// (spec §4.2) and of the session manager's get_game (spec §4.3).
type GameView struct {
	GameID         string            `json:"game_id"`
	State          BoardState        `json:"state"`
	IsCheck        bool              `json:"is_check"`
	IsOver         bool              `json:"is_over"`
	Result         *string           `json:"result"`
	EndReason      *string           `json:"end_reason"`
	MoveHistory    []MoveHistoryJSON `json:"move_history"`
	LegalMoveCount int               `json:"legal_move_count"`
}

// MoveOutcome is returned by ApplyMove and carried in the HTTP/WS move
// response (spec §4.2, §6).
type MoveOutcome struct {
	GameID    string     `json:"game_id"`
	Move      MoveJSON   `json:"move"`
	SAN       string     `json:"san"`
	State     BoardState `json:"state"`
	IsCheck   bool       `json:"is_check"`
	IsOver    bool       `json:"is_over"`
	Result    *string    `json:"result"`
	EndReason *string    `json:"end_reason"`
}

// ActionOutcome is returned by ApplyAction and carried in the HTTP/WS
// action response (spec §4.2, §6).
type ActionOutcome struct {
	GameID    string     `json:"game_id"`
	Action    string     `json:"action"`
	State     BoardState `json:"state"`
	IsOver    bool       `json:"is_over"`
	Result    *string    `json:"result"`
	EndReason *string    `json:"end_reason"`
}

func resultString(o *Outcome) *string {
	if o == nil {
		return nil
	}
	s := string(o.Result)
	return &s
}

func endReasonString(o *Outcome) *string {
	if o == nil {
		return nil
	}
	s := string(o.Reason)
	return &s
}

func enPassantString(sq board.Square) *string {
	if sq == board.NoSquare {
		return nil
	}
	s := sq.String()
	return &s
}
