package engine

import (
	"errors"
	"fmt"
	"strings"

	"odyssey/game"
	"odyssey/searcher"
	"odyssey/searcher/agent"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNotFinished     = errors.New("game is not finished")
)

type ControllerKind int

const (
	HumanController ControllerKind = iota
	AIController
)

func (k ControllerKind) String() string {
	if k == AIController {
		return "ai"
	}
	return "human"
}

func (k ControllerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ControllerKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "human":
		*k = HumanController
	case "ai":
		*k = AIController
	default:
		return fmt.Errorf("unknown controller %q", text)
	}
	return nil
}

// Controller decides who plays a seat. AI seats use the coordinator's
// evaluator at the given difficulty unless an Agent is set.
type Controller struct {
	Name       string              `json:"name"`
	Kind       ControllerKind      `json:"kind"`
	Difficulty searcher.Difficulty `json:"difficulty"`
	Agent      agent.Agent         `json:"-"`
}

func Human(name string) Controller {
	return Controller{Name: name, Kind: HumanController}
}

func AI(difficulty searcher.Difficulty) Controller {
	return Controller{Name: "ai-" + difficulty.String(), Kind: AIController, Difficulty: difficulty}
}

// Bot seats a custom agent, e.g. a tree search or a remote agent.
func Bot(name string, a agent.Agent) Controller {
	return Controller{Name: name, Kind: AIController, Agent: a}
}

func (c Controller) IsHuman() bool {
	return c.Kind == HumanController
}

// Intent is what a player asks for: move the piece on From to To. Placements
// and Morris removals leave From as game.NoCell, bearing off targets
// game.OffBoard and a Go pass leaves both as game.NoCell.
type Intent struct {
	Player game.Player `json:"player"`
	From   int         `json:"from"`
	To     int         `json:"to"`
}

// Result is returned by every operation that advances a session: the new
// state and, in order, the moves played and the events they produced,
// including dice, forfeits and AI replies.
type Result struct {
	SessionID string          `json:"sessionId"`
	State     *game.GameState `json:"state"`
	Moves     []game.Move     `json:"moves"`
	Events    []game.Event    `json:"events"`
}

// Summary is handed to the leaderboard once a game is over.
type Summary struct {
	GameKind   string   `json:"gameKind"`
	WinnerID   string   `json:"winnerId"` // empty for a draw
	PlayerIDs  []string `json:"playerIds"`
	DurationMs int64    `json:"durationMs"`
}

// UserMessage phrases a coordinator error for a player.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotYourTurn):
		return "that move isn't allowed: it is not your turn"
	case errors.Is(err, ErrSessionNotFound):
		return "that move isn't allowed: the game no longer exists"
	default:
		return game.UserMessage(err)
	}
}
