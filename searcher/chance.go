package searcher

import (
	"sync"

	"golang.org/x/exp/rand"

	"odyssey/game"
)

// chance stands for a state waiting on dice. Its children are the decision
// nodes of the outcomes seen so far, told apart by state hash.
type chance struct {
	sync.Mutex
	parent   Node
	mover    game.Player
	children []*decision
	rewards  float64
	visits   float64
}

func newChance(parent Node, mover game.Player) *chance {
	return &chance{
		parent: parent,
		mover:  mover,
	}
}

func (c *chance) SelectOrExpand(state *game.GameState, random *rand.Rand) (Node, *game.GameState, bool) {
	c.Lock()
	defer c.Unlock()

	rolls := game.LegalMoves(state)
	next := play(state, rolls[random.Intn(len(rolls))])

	// Select if explored outcome
	selected := true
	child := c.selects(next.Hash())
	// Expand if unexplored outcome
	if child == nil {
		child = newDecision(c, state.CurrentPlayer, next)
		c.children = append(c.children, child)
		selected = false
	}

	child.applyLoss()
	return child, next, selected
}

func (c *chance) selects(hash game.StateHash) *decision {
	for _, child := range c.children {
		if child.hash == hash {
			return child
		}
	}
	return nil
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.rewards += Loss
	c.visits++
}

func (c *chance) score(policy *uct) float64 {
	c.Lock()
	defer c.Unlock()

	return policy.evaluate(c.rewards, c.visits)
}

func (c *chance) Backup(reward func(game.Player) float64) Node {
	c.Lock()
	defer c.Unlock()

	if c.parent != nil {
		c.reverseLoss()
	}
	if c.mover != game.NoPlayer {
		c.rewards += reward(c.mover)
	}
	c.visits++

	return c.parent
}

func (c *chance) reverseLoss() {
	c.rewards -= Loss
	c.visits--
}

func (c *chance) Visits() float64 {
	c.Lock()
	defer c.Unlock()

	return c.visits
}
