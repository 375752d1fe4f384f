package game

var (
	chaturangaBack1 = []PieceKind{Ratha, Ashva, Gaja, Mantri, Raja, Gaja, Ashva, Ratha}
	chaturangaBack2 = []PieceKind{Ratha, Ashva, Gaja, Raja, Mantri, Gaja, Ashva, Ratha}

	knightSteps = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps   = append(append([][2]int{}, orthogonalSteps...), diagonalSteps...)
	gajaSteps   = [][2]int{{-2, -2}, {-2, 2}, {2, -2}, {2, 2}}
)

// chaturanga is played until a Raja is taken. The Mantri steps one square
// diagonally, the Gaja leaps two, and a Padati reaching the far rank becomes
// a Mantri.
type chaturanga struct{}

func (chaturanga) Layout(b *Board) {
	t := b.Topology()
	for col := 0; col < t.Cols; col++ {
		b.Set(t.Index(0, col), Piece{Owner: 1, Kind: chaturangaBack1[col]})
		b.Set(t.Index(1, col), Piece{Owner: 1, Kind: Padati})
		b.Set(t.Index(t.Rows-2, col), Piece{Owner: 2, Kind: Padati})
		b.Set(t.Index(t.Rows-1, col), Piece{Owner: 2, Kind: chaturangaBack2[col]})
	}
}

func (chaturanga) Setup(s *GameState) {}

// forward is the row direction a player's foot soldiers march in.
func forward(p Player) int {
	if p == 1 {
		return 1
	}
	return -1
}

func (chaturanga) LegalMoves(s *GameState) []Move {
	var moves []Move
	t := s.Board.Topology()
	player := s.CurrentPlayer
	for _, from := range s.Board.CellsOf(player) {
		c := t.Coords[from]
		add := func(to int) {
			if to != NoCell && !s.Board.At(to).BelongsTo(player) {
				moves = append(moves, newMove(StepMove, player, from, to))
			}
		}
		leap := func(steps [][2]int) {
			for _, d := range steps {
				add(t.Index(c.Row+d[0], c.Col+d[1]))
			}
		}

		switch s.Board.At(from).Kind {
		case Raja:
			leap(kingSteps)
		case Mantri:
			leap(diagonalSteps)
		case Gaja:
			leap(gajaSteps)
		case Ashva:
			leap(knightSteps)
		case Ratha:
			for _, d := range orthogonalSteps {
				for to := t.Index(c.Row+d[0], c.Col+d[1]); to != NoCell; {
					add(to)
					if !s.Board.IsEmpty(to) {
						break
					}
					tc := t.Coords[to]
					to = t.Index(tc.Row+d[0], tc.Col+d[1])
				}
			}
		case Padati:
			dir := forward(player)
			if to := t.Index(c.Row+dir, c.Col); to != NoCell && s.Board.IsEmpty(to) {
				add(to)
			}
			for _, dc := range []int{-1, 1} {
				to := t.Index(c.Row+dir, c.Col+dc)
				if to != NoCell && !s.Board.IsEmpty(to) {
					add(to)
				}
			}
		}
	}
	return moves
}

func (chaturanga) Play(s *GameState, m Move) []Event {
	var events []Event
	t := s.Board.Topology()
	piece := s.Board.Remove(m.From)
	captured := s.Board.At(m.To)
	if !captured.IsEmpty() {
		events = append(events, captureEvent(m.Player, m.To, 1))
	}

	lastRow := t.Rows - 1
	if m.Player == 2 {
		lastRow = 0
	}
	if piece.Kind == Padati && t.Coords[m.To].Row == lastRow {
		piece.Kind = Mantri
		events = append(events, Event{Type: PromotionEvent, Player: m.Player, Cell: m.To, Count: 1})
	}
	s.Board.Set(m.To, piece)

	if captured.Kind == Raja {
		return append(events, s.finish(m.Player))
	}
	s.endTurn()
	return events
}

// A side without a move loses.
func (chaturanga) NoMoves(s *GameState) []Event {
	return []Event{s.finish(s.Opponent(s.CurrentPlayer))}
}
