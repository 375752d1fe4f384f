package agent

import (
	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/searcher"
)

type heuristicAgent struct {
	evaluator  *searcher.Evaluator
	difficulty searcher.Difficulty
}

// NewHeuristicAgent returns an agent picking among the ranked moves of the
// evaluator the way the difficulty prescribes.
func NewHeuristicAgent(evaluator *searcher.Evaluator, difficulty searcher.Difficulty) Agent {
	return heuristicAgent{evaluator: evaluator, difficulty: difficulty}
}

func (a heuristicAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	if move, ok, err := decided(state); ok {
		return move, metrics.SearchMetric{}, err
	}
	move, err := a.evaluator.SuggestMove(state, a.difficulty)
	return move, metrics.SearchMetric{}, err
}
