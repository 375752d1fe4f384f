package agent

import (
	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent playing the most visited move of a tree search.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	if move, ok, err := decided(state); ok {
		return move, metrics.SearchMetric{}, err
	}
	policy, metric := a.mcts.Simulate(state)
	return findMax(policy), metric, nil
}

func findMax(policy []searcher.MoveEvaluation) game.Move {
	var maxMove game.Move
	maxVisit := -1.0
	for _, evaluation := range policy {
		if evaluation.Score > maxVisit {
			maxVisit = evaluation.Score
			maxMove = evaluation.Move
		}
	}
	return maxMove
}
