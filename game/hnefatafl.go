package game

const (
	TaflSize = 11
	// Throne is the centre square. Only the king may stop on or cross it.
	Throne = TaflSize*(TaflSize/2) + TaflSize/2
)

// hnefatafl is played with edge escape: the defenders win when the king
// reaches any edge square, the attackers when the king is enclosed on all four
// sides. Every piece moves like a rook and captures by sandwiching.
type hnefatafl struct{}

func (hnefatafl) Layout(b *Board) {
	t := b.Topology()
	last := TaflSize - 1
	mid := TaflSize / 2
	attack := func(row, col int) {
		b.Set(t.Index(row, col), Piece{Owner: 1, Kind: Attacker})
	}
	for i := 3; i <= 7; i++ {
		attack(0, i)
		attack(last, i)
		attack(i, 0)
		attack(i, last)
	}
	attack(1, mid)
	attack(last-1, mid)
	attack(mid, 1)
	attack(mid, last-1)

	defenders := [][2]int{
		{3, 5}, {4, 4}, {4, 5}, {4, 6}, {5, 3}, {5, 4},
		{5, 6}, {5, 7}, {6, 4}, {6, 5}, {6, 6}, {7, 5},
	}
	for _, d := range defenders {
		b.Set(t.Index(d[0], d[1]), Piece{Owner: 2, Kind: Defender})
	}
	b.Set(Throne, Piece{Owner: 2, Kind: King})
}

func (hnefatafl) Setup(s *GameState) {}

func (hnefatafl) LegalMoves(s *GameState) []Move {
	var moves []Move
	t := s.Board.Topology()
	player := s.CurrentPlayer
	for _, from := range s.Board.CellsOf(player) {
		king := s.Board.At(from).Kind == King
		for _, d := range orthogonalSteps {
			c := t.Coords[from]
			for {
				c = Coord{Row: c.Row + d[0], Col: c.Col + d[1]}
				to := t.Index(c.Row, c.Col)
				if to == NoCell || !s.Board.IsEmpty(to) {
					break
				}
				if to == Throne && !king {
					break
				}
				moves = append(moves, newMove(StepMove, player, from, to))
			}
		}
	}
	return moves
}

// hostile reports whether cell closes a sandwich for player: an own piece or
// the empty throne.
func hostile(b Board, cell int, player Player) bool {
	if cell == Throne && b.IsEmpty(cell) {
		return true
	}
	return b.At(cell).BelongsTo(player)
}

func (hnefatafl) Play(s *GameState, m Move) []Event {
	t := s.Board.Topology()
	player := m.Player
	piece := s.Board.Remove(m.From)
	s.Board.Set(m.To, piece)

	var events []Event
	c := t.Coords[m.To]
	for _, d := range orthogonalSteps {
		victim := t.Index(c.Row+d[0], c.Col+d[1])
		anvil := t.Index(c.Row+2*d[0], c.Col+2*d[1])
		if victim == NoCell || anvil == NoCell {
			continue
		}
		target := s.Board.At(victim)
		if target.IsEmpty() || target.Owner == player || target.Kind == King {
			continue
		}
		if hostile(s.Board, anvil, player) {
			s.Board.Remove(victim)
			events = append(events, captureEvent(player, victim, 1))
		}
	}

	if piece.Kind == King && onEdge(t, m.To) {
		return append(events, s.finish(player))
	}
	if player == 1 && KingSurrounded(s.Board) {
		return append(events, s.finish(player))
	}
	s.endTurn()
	return events
}

func onEdge(t *Topology, cell int) bool {
	c := t.Coords[cell]
	return c.Row == 0 || c.Col == 0 || c.Row == t.Rows-1 || c.Col == t.Cols-1
}

// KingSurrounded reports whether attackers (or the throne) close all four
// sides of the king.
func KingSurrounded(b Board) bool {
	t := b.Topology()
	for cell, p := range b.Cells {
		if p.Kind != King {
			continue
		}
		if onEdge(t, cell) {
			return false
		}
		for _, n := range t.Orthogonal[cell] {
			if n != Throne && !b.At(n).BelongsTo(1) {
				return false
			}
		}
		return true
	}
	return false
}

// A side without a move loses.
func (hnefatafl) NoMoves(s *GameState) []Event {
	return []Event{s.finish(s.Opponent(s.CurrentPlayer))}
}
