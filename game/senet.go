package game

const (
	SenetSquares = 30
	senetPieces  = 5

	SenetRebirth = 14 // House of Rebirth
	SenetWater   = 26 // House of Water
)

// Pieces on these houses cannot be attacked.
var senetSafe = map[int]bool{25: true, 27: true, 28: true}

func IsSenetSafe(cell int) bool {
	return senetSafe[cell]
}

// senet plays Kendall's rules on a 30 square track. Throwing sticks give 1 to
// 5, and a throw of 1, 4 or 5 earns another throw.
type senet struct{}

func (senet) Faces() []int {
	return []int{1, 2, 3, 4, 5}
}

func (senet) Layout(b *Board) {
	for i := 0; i < 2*senetPieces; i++ {
		b.Cells[i] = Piece{Owner: Player(i%2 + 1), Kind: Man, ID: i / 2}
	}
}

func (senet) Setup(s *GameState) {
	s.Reserve = []Piece{}
}

func (senet) LegalMoves(s *GameState) []Move {
	var moves []Move
	for _, from := range s.Board.CellsOf(s.CurrentPlayer) {
		to := from + s.Roll
		switch {
		case to == SenetSquares:
			m := newMove(BearOffMove, s.CurrentPlayer, from, OffBoard)
			m.Roll = s.Roll
			moves = append(moves, m)
		case to < SenetSquares && senetCanLand(s.Board, to, s.CurrentPlayer):
			m := newMove(StepMove, s.CurrentPlayer, from, to)
			m.Roll = s.Roll
			moves = append(moves, m)
		}
	}
	return moves
}

// senetCanLand checks the target square: empty, or an opponent piece that is
// neither on a safe house nor guarded by a friend next to it.
func senetCanLand(b Board, to int, player Player) bool {
	target := b.At(to)
	if target.IsEmpty() {
		return true
	}
	if target.Owner == player || senetSafe[to] {
		return false
	}
	return !SenetProtected(b, to)
}

// SenetProtected reports whether the piece on cell has a same-colour neighbour.
func SenetProtected(b Board, cell int) bool {
	owner := b.At(cell).Owner
	for _, n := range []int{cell - 1, cell + 1} {
		if n >= 0 && n < SenetSquares && b.At(n).BelongsTo(owner) {
			return true
		}
	}
	return false
}

func (senet) Play(s *GameState, m Move) []Event {
	var events []Event
	if m.Kind == BearOffMove {
		piece := s.Board.Remove(m.From)
		piece.Finished = true
		s.Reserve = append(s.Reserve, piece)
		events = append(events, Event{Type: FinishEvent, Player: m.Player, Cell: m.From, Count: 1})
		if len(s.reserveOf(m.Player, func(p Piece) bool { return p.Finished })) == senetPieces {
			return append(events, s.finish(m.Player))
		}
	} else {
		piece := s.Board.Remove(m.From)
		if target := s.Board.At(m.To); !target.IsEmpty() {
			s.Board.Set(m.From, target)
			events = append(events, captureEvent(m.Player, m.To, 1))
		}
		s.Board.Set(m.To, piece)
		if m.To == SenetWater {
			if cell := rebirthCell(s.Board); cell != NoCell {
				s.Board.Set(cell, s.Board.Remove(SenetWater))
			}
		}
	}

	switch m.Roll {
	case 1, 4, 5:
		return append(events, s.extraTurn())
	}
	s.endTurn()
	return events
}

// rebirthCell finds where a drowned piece restarts: the House of Rebirth or
// the first free square before it.
func rebirthCell(b Board) int {
	for cell := SenetRebirth; cell >= 0; cell-- {
		if b.IsEmpty(cell) {
			return cell
		}
	}
	return NoCell
}

func (senet) NoMoves(s *GameState) []Event {
	player := s.CurrentPlayer
	s.endTurn()
	return []Event{playerEvent(ForfeitEvent, player)}
}
