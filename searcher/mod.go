package searcher

import (
	"fmt"
	"strings"

	"odyssey/game"
)

// Difficulty selects how greedily the evaluator follows its own ranking.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = []string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if int(d) < 0 || int(d) >= len(difficultyNames) {
		return "unknown"
	}
	return difficultyNames[d]
}

// ParseDifficulty resolves a difficulty name, ignoring case.
func ParseDifficulty(name string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if strings.EqualFold(n, name) {
			return Difficulty(i), nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q", name)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MoveEvaluation is a scored candidate. It is recomputed every turn and never
// stored.
type MoveEvaluation struct {
	Move  game.Move `json:"move"`
	Score float64   `json:"score"`
}
