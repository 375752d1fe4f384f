package game

const morrisMen = 9

// morris plays Nine Men's Morris. Each side places its nine men, then moves
// them along the lines, and flies once reduced to three. Closing a mill
// removes an opposing man, preferring men outside mills.
type morris struct{}

func (morris) Layout(b *Board) {}

func (morris) Setup(s *GameState) {
	s.InHand = []int{morrisMen, morrisMen}
	s.Phase = PlacingPhase
}

// morrisPhase is the phase the player moves in when it is their turn.
func morrisPhase(s *GameState, p Player) Phase {
	switch {
	case s.InHand[p.Seat()] > 0:
		return PlacingPhase
	case len(s.Board.CellsOf(p)) == 3:
		return FlyingPhase
	default:
		return MovingPhase
	}
}

// InMill reports whether the piece on cell is part of a completed mill.
func InMill(b Board, cell int) bool {
	owner := b.At(cell).Owner
	if b.IsEmpty(cell) {
		return false
	}
	for _, mill := range morrisMills {
		if mill[0] != cell && mill[1] != cell && mill[2] != cell {
			continue
		}
		if b.At(mill[0]).BelongsTo(owner) && b.At(mill[1]).BelongsTo(owner) && b.At(mill[2]).BelongsTo(owner) {
			return true
		}
	}
	return false
}

func (morris) LegalMoves(s *GameState) []Move {
	player := s.CurrentPlayer
	var moves []Move

	if s.Phase == RemovingPhase {
		targets := s.Board.CellsOf(s.Opponent(player))
		var open []int
		for _, cell := range targets {
			if !InMill(s.Board, cell) {
				open = append(open, cell)
			}
		}
		if len(open) > 0 {
			targets = open
		}
		for _, cell := range targets {
			moves = append(moves, newMove(RemoveMove, player, NoCell, cell))
		}
		return moves
	}

	t := s.Board.Topology()
	switch s.Phase {
	case PlacingPhase:
		for cell := range s.Board.Cells {
			if s.Board.IsEmpty(cell) {
				moves = append(moves, newMove(PlaceMove, player, NoCell, cell))
			}
		}
	case FlyingPhase:
		for _, from := range s.Board.CellsOf(player) {
			for to := range s.Board.Cells {
				if s.Board.IsEmpty(to) {
					moves = append(moves, newMove(StepMove, player, from, to))
				}
			}
		}
	default:
		for _, from := range s.Board.CellsOf(player) {
			for _, to := range t.Neighbors[from] {
				if s.Board.IsEmpty(to) {
					moves = append(moves, newMove(StepMove, player, from, to))
				}
			}
		}
	}
	return moves
}

func (morris) Play(s *GameState, m Move) []Event {
	player := m.Player
	switch m.Kind {
	case RemoveMove:
		s.Board.Remove(m.To)
		return morrisAdvance(s, []Event{captureEvent(player, m.To, 1)})
	case PlaceMove:
		s.InHand[player.Seat()]--
		s.Board.Set(m.To, Piece{Owner: player, Kind: Man})
	default:
		s.Board.Set(m.To, s.Board.Remove(m.From))
	}

	if InMill(s.Board, m.To) {
		events := []Event{{Type: MillEvent, Player: player, Cell: m.To, Count: 1}}
		if len(s.Board.CellsOf(s.Opponent(player))) > 0 {
			s.Phase = RemovingPhase
			return events
		}
		return morrisAdvance(s, events)
	}
	return morrisAdvance(s, nil)
}

// morrisAdvance ends the turn, or the game when the opponent is down to two
// men with none left to place.
func morrisAdvance(s *GameState, events []Event) []Event {
	player := s.CurrentPlayer
	opponent := s.Opponent(player)
	if s.InHand[opponent.Seat()] == 0 && len(s.Board.CellsOf(opponent)) < 3 {
		return append(events, s.finish(player))
	}
	s.endTurn()
	s.Phase = morrisPhase(s, s.CurrentPlayer)
	return events
}

// A blocked side loses.
func (morris) NoMoves(s *GameState) []Event {
	return []Event{s.finish(s.Opponent(s.CurrentPlayer))}
}

// MillsThrough lists the mills a Morris point belongs to.
func MillsThrough(cell int) [][3]int {
	var mills [][3]int
	for _, mill := range morrisMills {
		if mill[0] == cell || mill[1] == cell || mill[2] == cell {
			mills = append(mills, mill)
		}
	}
	return mills
}
