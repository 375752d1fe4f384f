package searcher

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"odyssey/game"
)

type EvaluatorOption func(e *Evaluator)

// Evaluator ranks legal moves with a per-kind heuristic and picks one with a
// difficulty-dependent amount of randomness. It is safe for concurrent use;
// sessions share one Evaluator.
type Evaluator struct {
	mu         sync.Mutex
	random     *rand.Rand
	heuristics map[game.Kind]Heuristic
}

// WithSeed makes the evaluator's choices reproducible.
func WithSeed(seed uint64) EvaluatorOption {
	return func(e *Evaluator) {
		e.random = rand.New(rand.NewSource(seed))
	}
}

func WithSource(source rand.Source) EvaluatorOption {
	return func(e *Evaluator) {
		if source != nil {
			e.random = rand.New(source)
		}
	}
}

// WithHeuristic replaces the heuristic of one kind.
func WithHeuristic(kind game.Kind, h Heuristic) EvaluatorOption {
	return func(e *Evaluator) {
		if h != nil {
			e.heuristics[kind] = h
		}
	}
}

func NewEvaluator(options ...EvaluatorOption) *Evaluator {
	e := &Evaluator{ // Default values
		random:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		heuristics: make(map[game.Kind]Heuristic, len(defaultHeuristics)),
	}
	for kind, h := range defaultHeuristics {
		e.heuristics[kind] = h
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Rank scores every legal move and sorts them best first. Moves with equal
// scores keep the order of LegalMoves. Rolls are chance outcomes and are not
// ranked.
func (e *Evaluator) Rank(state *game.GameState) []MoveEvaluation {
	moves := game.LegalMoves(state)
	h, ok := e.heuristics[state.Kind]
	ranked := make([]MoveEvaluation, 0, len(moves))
	for _, move := range moves {
		if move.IsStochastic() || !ok {
			ranked = append(ranked, MoveEvaluation{Move: move})
			continue
		}
		after, _, err := game.ApplyMove(state, move)
		if err != nil {
			continue
		}
		played := after.History[len(after.History)-1]
		ranked = append(ranked, MoveEvaluation{
			Move:  played,
			Score: outcome(played) + h(state, after, played),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SuggestMove returns a move for the side to move:
//   - easy: 70% uniformly among the top 3, 30% the best
//   - medium: 40% the best, 60% uniformly among the top 3
//   - hard: 80% the best, 20% uniformly among the top 2
func (e *Evaluator) SuggestMove(state *game.GameState, difficulty Difficulty) (game.Move, error) {
	ranked := e.Rank(state)
	if len(ranked) == 0 {
		return game.Move{}, game.ErrNoMovesAvailable
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if ranked[0].Move.IsStochastic() {
		return ranked[e.random.Intn(len(ranked))].Move, nil
	}
	return e.pick(ranked, difficulty).Move, nil
}

func (e *Evaluator) pick(ranked []MoveEvaluation, difficulty Difficulty) MoveEvaluation {
	sampled := e.random.Float64()
	top := func(n int) MoveEvaluation {
		return ranked[e.random.Intn(min(n, len(ranked)))]
	}
	switch difficulty {
	case Hard:
		if sampled < 0.8 {
			return ranked[0]
		}
		return top(2)
	case Medium:
		if sampled < 0.4 {
			return ranked[0]
		}
		return top(3)
	default:
		if sampled < 0.3 {
			return ranked[0]
		}
		return top(3)
	}
}
