package game

import "odyssey/utils"

// Coord is the semantic coordinate of a cell: (row, col) on square grids,
// (ring, pit) on Mancala and Morris boards, (0, index) on tracks, and
// (month, n) for Hanafuda cards.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Topology is the static shape of a game's board. It is built once per kind
// from the tables below and never changes afterwards.
type Topology struct {
	Kind       Kind
	Size       int
	Rows       int // square grids only
	Cols       int
	Loop       bool // track wraps around
	Coords     []Coord
	Neighbors  [][]int // full adjacency
	Orthogonal [][]int // orthogonal adjacency, square grids only
}

func newTopology(kind Kind, size int) *Topology {
	t := &Topology{
		Kind:      kind,
		Size:      size,
		Coords:    make([]Coord, size),
		Neighbors: make([][]int, size),
	}
	for i := range t.Neighbors {
		t.Neighbors[i] = []int{}
	}
	return t
}

// AddBorder adds a bidirectional adjacency between two cells.
func (t *Topology) AddBorder(a, b int) {
	if utils.FindIndex(t.Neighbors[a], b) < 0 {
		t.Neighbors[a] = append(t.Neighbors[a], b)
	}
	if utils.FindIndex(t.Neighbors[b], a) < 0 {
		t.Neighbors[b] = append(t.Neighbors[b], a)
	}
}

// AreAdjacent checks if two cells share a border.
func (t *Topology) AreAdjacent(a, b int) bool {
	return utils.FindIndex(t.Neighbors[a], b) >= 0
}

// Index returns the cell at (row, col) of a square grid, or NoCell when the
// coordinate is off the board.
func (t *Topology) Index(row, col int) int {
	if row < 0 || col < 0 || row >= t.Rows || col >= t.Cols {
		return NoCell
	}
	return row*t.Cols + col
}

func (t *Topology) InBounds(cell int) bool {
	return cell >= 0 && cell < t.Size
}

var topologies = map[Kind]*Topology{
	Senet:          createTrack(Senet, SenetSquares, false),
	Go:             createGrid(Go, GoSize, GoSize),
	Mancala:        createRing(),
	Chaturanga:     createGrid(Chaturanga, 8, 8),
	NineMensMorris: createMorris(),
	Hnefatafl:      createGrid(Hnefatafl, TaflSize, TaflSize),
	Pachisi:        createTrack(Pachisi, RaceTrackLength, true),
	Patolli:        createTrack(Patolli, RaceTrackLength, true),
	Hanafuda:       createDeck(),
}

// TopologyOf returns the static topology of a game kind. A kind without a
// table is a corrupted configuration.
func TopologyOf(kind Kind) (*Topology, error) {
	t, ok := topologies[kind]
	if !ok {
		return nil, &InvalidStateError{Reason: "no adjacency table for " + kind.String()}
	}
	return t, nil
}

var (
	orthogonalSteps = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalSteps   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

func createGrid(kind Kind, rows, cols int) *Topology {
	t := newTopology(kind, rows*cols)
	t.Rows, t.Cols = rows, cols
	t.Orthogonal = make([][]int, t.Size)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := t.Index(r, c)
			t.Coords[i] = Coord{Row: r, Col: c}
			t.Orthogonal[i] = []int{}
			for _, d := range orthogonalSteps {
				if n := t.Index(r+d[0], c+d[1]); n != NoCell {
					t.Orthogonal[i] = append(t.Orthogonal[i], n)
					t.AddBorder(i, n)
				}
			}
			for _, d := range diagonalSteps {
				if n := t.Index(r+d[0], c+d[1]); n != NoCell {
					t.AddBorder(i, n)
				}
			}
		}
	}
	return t
}

// createTrack lays a track out three rows deep the way Senet is drawn; race
// tracks loop back to their first square.
func createTrack(kind Kind, length int, loop bool) *Topology {
	t := newTopology(kind, length)
	t.Loop = loop
	for i := 0; i < length; i++ {
		t.Coords[i] = Coord{Row: 0, Col: i}
		if kind == Senet {
			row, col := i/10, i%10
			if row == 1 {
				col = 9 - col
			}
			t.Coords[i] = Coord{Row: row, Col: col}
		}
		if i > 0 {
			t.AddBorder(i-1, i)
		}
	}
	if loop {
		t.AddBorder(length-1, 0)
	}
	return t
}

// createRing builds the Kalah ring: pits 0-5 and store 6 for seat 1, pits 7-12
// and store 13 for seat 2, sown counter-clockwise.
func createRing() *Topology {
	t := newTopology(Mancala, MancalaCells)
	t.Loop = true
	for i := 0; i < MancalaCells; i++ {
		t.Coords[i] = Coord{Row: i / (MancalaPits + 1), Col: i % (MancalaPits + 1)}
		t.AddBorder(i, (i+1)%MancalaCells)
	}
	return t
}

// morrisPoints are the (x, y) positions of the 24 points, outer ring first.
var morrisPoints = [][2]int{
	{0, 0}, {3, 0}, {6, 0},
	{1, 1}, {3, 1}, {5, 1},
	{2, 2}, {3, 2}, {4, 2},
	{0, 3}, {1, 3}, {2, 3}, {4, 3}, {5, 3}, {6, 3},
	{2, 4}, {3, 4}, {4, 4},
	{1, 5}, {3, 5}, {5, 5},
	{0, 6}, {3, 6}, {6, 6},
}

var morrisLines = [][2]int{
	{0, 1}, {1, 2}, {3, 4}, {4, 5}, {6, 7}, {7, 8},
	{9, 10}, {10, 11}, {12, 13}, {13, 14},
	{15, 16}, {16, 17}, {18, 19}, {19, 20}, {21, 22}, {22, 23},
	{0, 9}, {9, 21}, {3, 10}, {10, 18}, {6, 11}, {11, 15},
	{1, 4}, {4, 7}, {16, 19}, {19, 22},
	{8, 12}, {12, 17}, {5, 13}, {13, 20}, {2, 14}, {14, 23},
}

// morrisMills are the sixteen three-in-a-row lines.
var morrisMills = [][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9, 10, 11}, {12, 13, 14}, {15, 16, 17}, {18, 19, 20}, {21, 22, 23},
	{0, 9, 21}, {3, 10, 18}, {6, 11, 15}, {1, 4, 7}, {16, 19, 22}, {8, 12, 17}, {5, 13, 20}, {2, 14, 23},
}

func createMorris() *Topology {
	t := newTopology(NineMensMorris, len(morrisPoints))
	for i, p := range morrisPoints {
		t.Coords[i] = Coord{Row: p[1], Col: p[0]}
	}
	for _, line := range morrisLines {
		t.AddBorder(line[0], line[1])
	}
	return t
}

func createDeck() *Topology {
	t := newTopology(Hanafuda, HanafudaCards)
	for i := 0; i < HanafudaCards; i++ {
		t.Coords[i] = Coord{Row: i / 4, Col: i % 4}
	}
	return t
}
