package agent

import (
	"odyssey/experiments/metrics"
	"odyssey/game"
)

type Agent interface {
	// FindMove returns the move to play for the side to move and performance metrics (if collected) from the search
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error)
}

// decided reports the move of a state that leaves no choice: a dice roll is
// drawn by the caller and a single legal move needs no search.
func decided(state *game.GameState) (game.Move, bool, error) {
	if state.IsOver() {
		return game.Move{}, true, game.ErrGameOver
	}
	if state.Phase == game.RollPhase {
		return game.Move{}, true, game.ErrNoMovesAvailable
	}
	moves := game.LegalMoves(state)
	switch len(moves) {
	case 0:
		return game.Move{}, true, game.ErrNoMovesAvailable
	case 1:
		return moves[0], true, nil
	}
	return game.Move{}, false, nil
}
