package agent

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	mu          sync.Mutex
	random      *rand.Rand
}

// NewTrainingAgent returns an agent sampling moves in proportion to their
// visit share, sharpened (temperature < 1) or flattened (> 1). Tournaments use
// it to vary self-play.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		random:      rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	if move, ok, err := decided(state); ok {
		return move, metrics.SearchMetric{}, err
	}
	policy, metric := a.mcts.Simulate(state)
	policy = adjustTemperature(policy, a.temperature)

	a.mu.Lock()
	defer a.mu.Unlock()
	return sample(policy, a.random.Float64()), metric, nil
}

func adjustTemperature(policy []searcher.MoveEvaluation, temperature float64) []searcher.MoveEvaluation {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]searcher.MoveEvaluation, len(policy))
	for i, evaluation := range policy {
		prob := math.Pow(evaluation.Score, exponent)
		sum += prob
		adjusted[i] = searcher.MoveEvaluation{Move: evaluation.Move, Score: prob}
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i].Score /= sum
	}
	return adjusted
}

func sample(policy []searcher.MoveEvaluation, sampled float64) game.Move {
	cumulative := 0.0
	var lastMove game.Move
	for _, evaluation := range policy {
		lastMove = evaluation.Move
		cumulative += evaluation.Score
		if sampled < cumulative {
			return evaluation.Move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
