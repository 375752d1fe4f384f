package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind selects the board topology and rule set of a game.
type Kind int

const (
	Senet Kind = iota
	Go
	Mancala
	Chaturanga
	NineMensMorris
	Hnefatafl
	Pachisi
	Patolli
	Hanafuda
)

// Kinds lists every supported game.
var Kinds = []Kind{Senet, Go, Mancala, Chaturanga, NineMensMorris, Hnefatafl, Pachisi, Patolli, Hanafuda}

var kindNames = map[Kind]string{
	Senet:          "Senet",
	Go:             "Go",
	Mancala:        "Mancala",
	Chaturanga:     "Chaturanga",
	NineMensMorris: "NineMensMorris",
	Hnefatafl:      "Hnefatafl",
	Pachisi:        "Pachisi",
	Patolli:        "Patolli",
	Hanafuda:       "Hanafuda",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a game name, ignoring case.
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if strings.EqualFold(n, name) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown game %q", name)
}

// Players returns the number of seats the game is played with.
func (k Kind) Players() int {
	if k == Pachisi {
		return 4
	}
	return 2
}

// UsesDice reports whether turns start with a roll.
func (k Kind) UsesDice() bool {
	return k == Senet || k == Pachisi || k == Patolli
}

func (k Kind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown game kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
