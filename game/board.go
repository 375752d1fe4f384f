package game

import (
	"encoding/binary"
	"encoding/json"
	"hash/fnv"
)

const (
	NoCell   = -1 // placements, rolls and passes have no source cell
	OffBoard = -2 // target of a piece leaving the track
)

// Board is the ordered sequence of cells of one game. Its length and topology
// are fixed by the kind at construction.
type Board struct {
	Kind  Kind
	Cells []Piece
}

// CreateBoard returns the canonical initial layout of a game.
func CreateBoard(kind Kind) (Board, error) {
	r, err := rulesFor(kind)
	if err != nil {
		return Board{}, err
	}
	t, err := TopologyOf(kind)
	if err != nil {
		return Board{}, err
	}
	b := Board{Kind: kind, Cells: make([]Piece, t.Size)}
	r.Layout(&b)
	return b, nil
}

// NeighborsOf returns the topology-specific adjacency of a cell.
func NeighborsOf(b Board, cell int) []int {
	t := b.Topology()
	if !t.InBounds(cell) {
		return nil
	}
	return append([]int(nil), t.Neighbors[cell]...)
}

// Topology returns the static shape of the board. Boards are only built for
// kinds with a table, so a miss here means the board was corrupted.
func (b Board) Topology() *Topology {
	t, err := TopologyOf(b.Kind)
	if err != nil {
		panic(err)
	}
	return t
}

func (b Board) Len() int {
	return len(b.Cells)
}

func (b Board) At(cell int) Piece {
	return b.Cells[cell]
}

func (b *Board) Set(cell int, p Piece) {
	b.Cells[cell] = p
}

func (b *Board) Remove(cell int) Piece {
	p := b.Cells[cell]
	b.Cells[cell] = Piece{}
	return p
}

func (b Board) IsEmpty(cell int) bool {
	return b.Cells[cell].IsEmpty()
}

func (b Board) Clone() Board {
	clone := Board{Kind: b.Kind, Cells: make([]Piece, len(b.Cells))}
	copy(clone.Cells, b.Cells)
	return clone
}

// Occupants counts the pieces on the board. Mancala pits count their seeds.
func (b Board) Occupants() int {
	total := 0
	for _, p := range b.Cells {
		switch {
		case p.Kind == Seeds:
			total += p.Count
		case !p.IsEmpty():
			total++
		}
	}
	return total
}

// CellsOf lists the cells holding a piece of the player, in board order.
func (b Board) CellsOf(player Player) []int {
	var cells []int
	for i, p := range b.Cells {
		if p.BelongsTo(player) {
			cells = append(cells, i)
		}
	}
	return cells
}

// Hash fingerprints the occupants of the board, used for Go's ko rule.
func (b Board) Hash() StateHash {
	hasher := fnv.New64a()
	for _, p := range b.Cells {
		binary.Write(hasher, binary.LittleEndian, int64(p.Owner))
		binary.Write(hasher, binary.LittleEndian, int64(p.Kind))
		binary.Write(hasher, binary.LittleEndian, int64(p.Count))
	}
	return StateHash(hasher.Sum64())
}

// MarshalJSON writes the board as its bare cell array; the kind travels with
// the enclosing state.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Cells)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.Cells)
}
