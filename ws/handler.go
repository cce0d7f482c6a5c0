// Package ws implements the WebSocket transport at /ws (spec §6):
// command dispatch mirroring the REST surface, plus subscribe/unsubscribe
// to per-game event streams.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/checkai-srv/checkai/board"
	"github.com/checkai-srv/checkai/checkerr"
	"github.com/checkai-srv/checkai/eventbus"
	"github.com/checkai-srv/checkai/game"
	"github.com/checkai-srv/checkai/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// command is the decoded form of a client frame (spec §6). Action is the
// command name ("submit_move", "subscribe", ...); ActionKind carries the
// resign/offer_draw/claim_draw payload only for a "submit_action" command,
// mirroring the REST action-request JSON's "action" field one level down.
type command struct {
	Action     string `json:"action"`
	RequestID  string `json:"request_id,omitempty"`
	GameID     string `json:"game_id,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	ActionKind string `json:"action_kind,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// response is a server frame of type "response".
type response struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	RequestID string `json:"request_id,omitempty"`
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// eventFrame is a server frame of type "event".
type eventFrame struct {
	Type   string `json:"type"`
	Event  string `json:"event"`
	GameID string `json:"game_id"`
	Data   any    `json:"data,omitempty"`
}

// Handler upgrades HTTP connections to WebSocket and dispatches commands
// against a session.Manager and eventbus.Bus.
type Handler struct {
	mgr    *session.Manager
	bus    *eventbus.Bus
	logger *zap.Logger
}

// New returns a Handler wired to mgr and bus.
func New(mgr *session.Manager, bus *eventbus.Bus, logger *zap.Logger) *Handler {
	return &Handler{mgr: mgr, bus: bus, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sess := &connSession{
		conn:        conn,
		h:           h,
		subscribers: make(map[string]*eventbus.Subscriber),
	}
	defer sess.closeAll()

	var writeMu sync.Mutex
	sess.writeMu = &writeMu

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		sess.dispatch(cmd)
	}
}

// connSession tracks one WebSocket connection's subscriptions.
type connSession struct {
	conn        *websocket.Conn
	h           *Handler
	writeMu     *sync.Mutex
	mu          sync.Mutex
	subscribers map[string]*eventbus.Subscriber
}

func (s *connSession) writeJSON(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(v); err != nil {
		s.h.logger.Warn("websocket write failed", zap.Error(err))
	}
}

func (s *connSession) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers {
		sub.Close()
	}
}

func (s *connSession) dispatch(cmd command) {
	data, err := s.handle(cmd)
	resp := response{Type: "response", Action: cmd.Action, RequestID: cmd.RequestID}
	if err != nil {
		resp.Success = false
		resp.Error = err.Error()
	} else {
		resp.Success = true
		resp.Data = data
	}
	s.writeJSON(resp)
}

func (s *connSession) handle(cmd command) (any, error) {
	switch cmd.Action {
	case "create_game":
		id := s.h.mgr.CreateGame()
		return map[string]string{"game_id": id}, nil

	case "list_games":
		return map[string]any{"games": s.h.mgr.ListGames()}, nil

	case "get_game":
		return s.h.mgr.GetGame(cmd.GameID)

	case "delete_game":
		if err := s.h.mgr.DeleteGame(cmd.GameID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "game deleted"}, nil

	case "submit_move":
		mv, err := decodeMove(cmd)
		if err != nil {
			return nil, err
		}
		return s.h.mgr.SubmitMove(cmd.GameID, mv)

	case "submit_action":
		action, err := decodeAction(cmd)
		if err != nil {
			return nil, err
		}
		return s.h.mgr.SubmitAction(cmd.GameID, action)

	case "get_legal_moves":
		moves, err := s.h.mgr.LegalMoves(cmd.GameID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"moves": movesToJSON(moves)}, nil

	case "get_board":
		view, err := s.h.mgr.GetGame(cmd.GameID)
		if err != nil {
			return nil, err
		}
		return view.State.Render(), nil

	case "subscribe":
		s.subscribe(cmd.GameID)
		return map[string]string{"subscribed": cmd.GameID}, nil

	case "unsubscribe":
		s.unsubscribe(cmd.GameID)
		return map[string]string{"unsubscribed": cmd.GameID}, nil

	default:
		return nil, checkerr.MalformedInput("unknown action " + cmd.Action)
	}
}

func (s *connSession) subscribe(gameID string) {
	s.mu.Lock()
	if _, ok := s.subscribers[gameID]; ok {
		s.mu.Unlock()
		return
	}
	sub := s.h.bus.Subscribe(gameID)
	s.subscribers[gameID] = sub
	s.mu.Unlock()

	go s.pump(gameID, sub)
}

func (s *connSession) unsubscribe(gameID string) {
	s.mu.Lock()
	sub, ok := s.subscribers[gameID]
	if ok {
		delete(s.subscribers, gameID)
	}
	s.mu.Unlock()
	if ok {
		sub.Close()
	}
}

func (s *connSession) pump(gameID string, sub *eventbus.Subscriber) {
	for ev := range sub.C {
		s.writeJSON(eventFrame{
			Type:   "event",
			Event:  string(ev.Kind),
			GameID: ev.GameID,
			Data:   ev.Data,
		})
	}
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

func decodeMove(cmd command) (board.Move, error) {
	from, ok := board.ParseSquare(cmd.From)
	if !ok {
		return board.Move{}, checkerr.MalformedInput("invalid \"from\" square")
	}
	to, ok := board.ParseSquare(cmd.To)
	if !ok {
		return board.Move{}, checkerr.MalformedInput("invalid \"to\" square")
	}
	promo := board.NoPiece
	if cmd.Promotion != "" {
		p, ok := board.PieceFromLetter(cmd.Promotion[0])
		if !ok {
			return board.Move{}, checkerr.MalformedInput("invalid promotion piece")
		}
		promo = p
	}
	return board.Move{From: from, To: to, Promotion: promo}, nil
}

func decodeAction(cmd command) (game.Action, error) {
	switch cmd.ActionKind {
	case string(game.ActionResign):
		return game.Action{Kind: game.ActionResign}, nil
	case string(game.ActionOfferDraw):
		return game.Action{Kind: game.ActionOfferDraw}, nil
	case string(game.ActionClaimDraw):
		switch cmd.Reason {
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

