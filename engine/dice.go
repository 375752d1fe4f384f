package engine

import (
	"sync"

	"golang.org/x/exp/rand"
)

// Dice throws for every session of a coordinator.
type Dice struct {
	mu     sync.Mutex
	random *rand.Rand
}

func NewDice(seed uint64) *Dice {
	return &Dice{random: rand.New(rand.NewSource(seed))}
}

// Roll picks one of the faces uniformly.
func (d *Dice) Roll(faces []int) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return faces[d.random.Intn(len(faces))]
}
