// Package api implements the HTTP transport (spec §6): one gorilla/mux
// router wired to a session.Manager, with gorilla/handlers access
// logging and a single checkerr-to-status-code mapping.
package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/checkai-srv/checkai/session"
)

// NewRouter builds the full HTTP surface of spec §6, wrapped with an
// access-log middleware.
func NewRouter(mgr *session.Manager, logger *zap.Logger) http.Handler {
	h := &handler{mgr: mgr, logger: logger}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/games").Subrouter()

	api.HandleFunc("", h.createGame).Methods(http.MethodPost)
	api.HandleFunc("", h.listGames).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.getGame).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.deleteGame).Methods(http.MethodDelete)
	api.HandleFunc("/{id}/move", h.submitMove).Methods(http.MethodPost)
	api.HandleFunc("/{id}/action", h.submitAction).Methods(http.MethodPost)
	api.HandleFunc("/{id}/moves", h.getLegalMoves).Methods(http.MethodGet)
	api.HandleFunc("/{id}/board", h.getBoard).Methods(http.MethodGet)

	return handlers.CombinedLoggingHandler(zapAccessLogWriter{logger}, r)
}
