package searcher

import (
	"math"
	"sort"
	"sync"

	"golang.org/x/exp/rand"

	"odyssey/game"
)

type decision struct {
	sync.Mutex
	parent   Node
	mover    game.Player // who played the move leading here
	hash     game.StateHash
	moves    []game.Move
	children []Node
	rewards  float64
	visits   float64
}

func newDecision(parent Node, mover game.Player, state *game.GameState) *decision {
	moves := movesOf(state)
	return &decision{
		parent:   parent,
		mover:    mover,
		hash:     state.Hash(),
		moves:    moves,
		children: make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state *game.GameState, random *rand.Rand) (Node, *game.GameState, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		next := play(state, move)
		child := newNode(d, state.CurrentPlayer, next)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, play(state, d.moves[ith]), true
}

func (d *decision) pickChild() int {
	policy := newUCT(CSquared, math.Max(d.visits, 1))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(policy)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(policy *uct) float64 {
	d.Lock()
	defer d.Unlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) Backup(reward func(game.Player) float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}
	if d.mover != game.NoPlayer {
		d.rewards += reward(d.mover)
	}
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Visits() float64 {
	d.Lock()
	defer d.Unlock()

	return d.visits
}

// Policy returns the share of visits of every explored move, most visited
// first.
func (d *decision) Policy() []MoveEvaluation {
	d.Lock()
	children := append([]Node(nil), d.children...)
	d.Unlock()

	total := 0.0
	visits := make([]float64, len(children))
	for i, child := range children {
		visits[i] = child.Visits()
		total += visits[i]
	}

	policy := make([]MoveEvaluation, len(children))
	for i := range children {
		policy[i] = MoveEvaluation{Move: d.moves[i]}
		if total > 0 {
			policy[i].Score = visits[i] / total
		}
	}
	sort.SliceStable(policy, func(i, j int) bool {
		return policy[i].Score > policy[j].Score
	})
	return policy
}
