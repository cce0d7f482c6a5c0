package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/checkerr"
	"github.com/checkai-srv/checkai/game"
	"github.com/checkai-srv/checkai/session"
)

type handler struct {
	mgr    *session.Manager
	logger *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	cerr, ok := err.(*checkerr.Error)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch cerr.Code {
	case checkerr.CodeNotFound:
		status = http.StatusNotFound
	case checkerr.CodeGameAlreadyOver:
		status = http.StatusConflict
	case checkerr.CodeIllegalMove, checkerr.CodeMalformedInput, checkerr.CodeIneligibleDrawClaim:
		status = http.StatusBadRequest
	case checkerr.CodeInternal:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": cerr.Error()})
}

func (h *handler) createGame(w http.ResponseWriter, r *http.Request) {
	id := h.mgr.CreateGame()
	writeJSON(w, http.StatusCreated, map[string]string{"game_id": id, "message": "game created"})
}

func (h *handler) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"games": h.mgr.ListGames()})
}

func (h *handler) getGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.mgr.GetGame(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.mgr.DeleteGame(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "game deleted"})
}

// moveRequest is the wire form of spec §6's submitted-move JSON.
type moveRequest struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Promotion *string `json:"promotion"`
}

func (mr moveRequest) toMove() (board.Move, error) {
	from, ok := board.ParseSquare(mr.From)
	if !ok {
		return board.Move{}, checkerr.MalformedInput("invalid \"from\" square")
	}
	to, ok := board.ParseSquare(mr.To)
	if !ok {
		return board.Move{}, checkerr.MalformedInput("invalid \"to\" square")
	}
	promo := board.NoPiece
	if mr.Promotion != nil {
		p, ok := board.PieceFromLetter((*mr.Promotion)[0])
		if !ok {
			return board.Move{}, checkerr.MalformedInput("invalid promotion piece")
		}
		promo = p
	}
	return board.Move{From: from, To: to, Promotion: promo}, nil
}

func (h *handler) submitMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var mr moveRequest
	if err := json.NewDecoder(r.Body).Decode(&mr); err != nil {
		writeError(w, checkerr.MalformedInput("invalid JSON body"))
		return
	}
	mv, err := mr.toMove()
	if err != nil {
		writeError(w, err)
		return
	}

	outcome, err := h.mgr.SubmitMove(id, mv)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// actionRequest is the wire form of spec §6's action JSON.
type actionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func (ar actionRequest) toAction() (game.Action, error) {
	switch ar.Action {
	case string(game.ActionResign):
		return game.Action{Kind: game.ActionResign}, nil
	case string(game.ActionOfferDraw):
		return game.Action{Kind: game.ActionOfferDraw}, nil
	case string(game.ActionClaimDraw):
		switch ar.Reason {
		case string(game.ClaimThreefoldRepetition):
			return game.Action{Kind: game.ActionClaimDraw, Reason: game.ClaimThreefoldRepetition}, nil
		case string(game.ClaimFiftyMoveRule):
			return game.Action{Kind: game.ActionClaimDraw, Reason: game.ClaimFiftyMoveRule}, nil
		default:
			return game.Action{}, checkerr.MalformedInput("unknown claim_draw reason")
		}
	default:
		return game.Action{}, checkerr.MalformedInput("unknown action")
	}
}

func (h *handler) submitAction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var ar actionRequest
	if err := json.NewDecoder(r.Body).Decode(&ar); err != nil {
		writeError(w, checkerr.MalformedInput("invalid JSON body"))
		return
	}
	action, err := ar.toAction()
	if err != nil {
		writeError(w, err)
		return
	}

	outcome, err := h.mgr.SubmitAction(id, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *handler) getLegalMoves(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	moves, err := h.mgr.LegalMoves(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": movesToJSON(moves)})
}

// movesToJSON converts a legal-move list to its wire form (spec §6): each
// board.Move through game.MoveToJSON, matching the shape move_json already
// uses in the move-history and move-outcome bodies.
func movesToJSON(moves []board.Move) []game.MoveJSON {
	out := make([]game.MoveJSON, len(moves))
	for i, mv := range moves {
		out[i] = game.MoveToJSON(mv)
	}
	return out
}

func (h *handler) getBoard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	view, err := h.mgr.GetGame(id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(view.State.Render()))
}
