package communication

import (
	"encoding/json"

	"odyssey/engine"
	"odyssey/game"
	"odyssey/searcher"
)

// StartRequest opens a session. Missing seats are filled by medium AIs.
type StartRequest struct {
	Game    game.Kind           `json:"game"`
	Players []engine.Controller `json:"players"`
	Seed    uint64              `json:"seed,omitempty"`
}

func (r StartRequest) controllers() []engine.Controller {
	controllers := append([]engine.Controller(nil), r.Players...)
	for len(controllers) < r.Game.Players() {
		controllers = append(controllers, engine.AI(searcher.Medium))
	}
	return controllers
}

// RestoreRequest resumes a game saved through GET /save.
type RestoreRequest struct {
	State   json.RawMessage     `json:"state"`
	Players []engine.Controller `json:"players"`
}

type SessionView struct {
	SessionID  string              `json:"sessionId"`
	State      *game.GameState     `json:"state"`
	Players    []engine.Controller `json:"players"`
	LegalMoves []game.Move         `json:"legalMoves"`
	Summary    *engine.Summary     `json:"summary,omitempty"`
}

type SuggestionResponse struct {
	Move       game.Move           `json:"move"`
	Difficulty searcher.Difficulty `json:"difficulty"`
}

type GameInfo struct {
	Kind    game.Kind `json:"kind"`
	Players int       `json:"players"`
	Dice    bool      `json:"dice"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Uptime   string `json:"uptime"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
