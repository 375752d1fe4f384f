package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"odyssey/game"
)

// FindMoveRequest carries a serialized game state to a remote agent.
type FindMoveRequest struct {
	State json.RawMessage `json:"state"`
}

// FindMoveResponse is a remote agent's answer.
type FindMoveResponse struct {
	Move game.Move `json:"move"`
}

// NewServer exposes an agent over HTTP at POST /findmove.
func NewServer(a Agent) http.Handler {
	r := chi.NewRouter()
	r.Post("/findmove", func(w http.ResponseWriter, r *http.Request) {
		handleFindMove(a, w, r)
	})
	return r
}

func handleFindMove(a Agent, w http.ResponseWriter, r *http.Request) {
	var payload FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	state, err := game.Deserialize(payload.State)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	move, metric, err := a.FindMove(state)
	switch {
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNoMovesAvailable):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debug().Msgf("agent found %s after %d episodes", move, metric.Episodes)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FindMoveResponse{Move: move}); err != nil {
		log.Error().Err(err).Msg("failed to encode move")
	}
}
