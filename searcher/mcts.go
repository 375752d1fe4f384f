package searcher

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"odyssey/experiments/metrics"
	"odyssey/game"
)

// MaxCutoff bounds the length of a random playout.
const MaxCutoff = 200

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
	collect    bool
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

// WithRandomSeed fixes the playout randomness. With one goroutine and a fixed
// number of episodes the search is then deterministic.
func WithRandomSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.collect = true
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		seed:       uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit share of every root
// move, most visited first. Concurrent calls each build their own tree.
func (m *MCTS) Simulate(state *game.GameState) ([]MoveEvaluation, metrics.SearchMetric) {
	root := newDecision(nil, game.NoPlayer, state)
	collector := metrics.NewDummyCollector()
	if m.collect {
		collector = metrics.NewCollector()
	}

	// Run simulations to collect statistics
	collector.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(root, state, collector)
	} else {
		m.countdown(root, state, collector)
	}
	metric := collector.Complete()

	return root.Policy(), metric
}

func (m *MCTS) iterate(root *decision, state *game.GameState, collector metrics.Collector) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		random := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(root, state, random, collector)
				collector.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *decision, state *game.GameState, collector metrics.Collector) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		random := rand.New(rand.NewSource(m.seed + uint64(i)))
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, state, random, collector)
					collector.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(root Node, state *game.GameState, random *rand.Rand, collector metrics.Collector) {
	newNode, newState := selectThenExpand(root, state, random)
	reward := rollout(newState, m.cutoff, random, collector)
	backup(newNode, reward)
}

func selectThenExpand(root Node, state *game.GameState, random *rand.Rand) (Node, *game.GameState) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state, random)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state, random)
	}
	return child, state
}

func rollout(state *game.GameState, cutoff int, random *rand.Rand, collector metrics.Collector) func(game.Player) float64 {
	depth := 0
	moves := movesOf(state)
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[random.Intn(len(moves))] // Random rollout policy
		state = play(state, move)
		moves = movesOf(state)
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		collector.AddFullPlayout()
	}
	return rewarder(state)
}

func backup(newNode Node, reward func(game.Player) float64) {
	node := newNode
	for node != nil {
		parent := node.Backup(reward)
		node = parent
	}
}
