package game

const (
	GoSize = 9
	// Komi is given to White, doubled to keep scores integral.
	doubleKomi = 13
)

// goban plays Go with area scoring. A placement may not be suicide unless it
// captures, and may not recreate the board position before the opponent's
// last move (simple ko). Two passes in a row end the game.
type goban struct{}

func (goban) Layout(b *Board) {}

func (goban) Setup(s *GameState) {
	s.Prisoners = make([]int, s.Players)
}

func (goban) LegalMoves(s *GameState) []Move {
	moves := []Move{}
	for cell := range s.Board.Cells {
		if ok, _ := placementAllowed(s, cell, s.CurrentPlayer); ok {
			moves = append(moves, newMove(PlaceMove, s.CurrentPlayer, NoCell, cell))
		}
	}
	return append(moves, newMove(PassMove, s.CurrentPlayer, NoCell, NoCell))
}

// placementAllowed reports whether the player may put a stone on cell, and why not.
func placementAllowed(s *GameState, cell int, player Player) (bool, string) {
	if !s.Board.IsEmpty(cell) {
		return false, "occupied"
	}
	board := s.Board.Clone()
	captured := placeStone(&board, cell, player)
	if len(captured) == 0 {
		if _, liberties := Group(board, cell); liberties == 0 {
			return false, "suicide"
		}
	}
	if s.KoHash != 0 && board.Hash() == s.KoHash {
		return false, "ko"
	}
	return true, ""
}

// IsSuicide reports whether a stone on cell would leave its own group without
// liberties and capture nothing.
func IsSuicide(b Board, cell int, player Player) bool {
	board := b.Clone()
	if len(placeStone(&board, cell, player)) > 0 {
		return false
	}
	_, liberties := Group(board, cell)
	return liberties == 0
}

// placeStone puts a stone down and removes the opponent groups left without
// liberties. It returns the captured cells.
func placeStone(b *Board, cell int, player Player) []int {
	b.Set(cell, Piece{Owner: player, Kind: Stone})
	t := b.Topology()
	var captured []int
	for _, n := range t.Orthogonal[cell] {
		occupant := b.At(n)
		if occupant.IsEmpty() || occupant.Owner == player {
			continue
		}
		stones, liberties := Group(*b, n)
		if liberties > 0 {
			continue
		}
		for _, stone := range stones {
			b.Remove(stone)
			captured = append(captured, stone)
		}
	}
	return captured
}

// Group returns the stones connected to cell and the number of distinct
// liberties of that group. Just BFS.
func Group(b Board, cell int) (stones []int, liberties int) {
	t := b.Topology()
	owner := b.At(cell).Owner
	visited := map[int]bool{cell: true}
	libertySet := map[int]bool{}
	queue := []int{cell}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		stones = append(stones, current)
		for _, n := range t.Orthogonal[current] {
			occupant := b.At(n)
			switch {
			case occupant.IsEmpty():
				libertySet[n] = true
			case occupant.Owner == owner && !visited[n]:
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return stones, len(libertySet)
}

func (goban) Play(s *GameState, m Move) []Event {
	if m.Kind == PassMove {
		s.Passes++
		s.KoHash = 0
		events := []Event{playerEvent(PassEvent, m.Player)}
		if s.Passes >= 2 {
			return append(events, score(s))
		}
		s.endTurn()
		return events
	}

	before := s.Board.Hash()
	captured := placeStone(&s.Board, m.To, m.Player)
	var events []Event
	for _, cell := range captured {
		events = append(events, captureEvent(m.Player, cell, 1))
	}
	s.Prisoners[m.Player.Seat()] += len(captured)
	s.KoHash = before
	s.Passes = 0
	s.endTurn()
	return events
}

// A pass is always legal, so Go never runs out of moves.
func (goban) NoMoves(s *GameState) []Event {
	s.endTurn()
	return []Event{playerEvent(PassEvent, s.CurrentPlayer)}
}

// AreaScore counts stones plus the empty regions reached by one colour only.
func AreaScore(b Board) map[Player]int {
	t := b.Topology()
	scores := map[Player]int{1: 0, 2: 0}
	seen := make([]bool, b.Len())
	for cell, p := range b.Cells {
		if !p.IsEmpty() {
			scores[p.Owner]++
			continue
		}
		if seen[cell] {
			continue
		}
		region := 0
		borders := map[Player]bool{}
		queue := []int{cell}
		seen[cell] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			region++
			for _, n := range t.Orthogonal[current] {
				occupant := b.At(n)
				if !occupant.IsEmpty() {
					borders[occupant.Owner] = true
				} else if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
		if len(borders) == 1 {
			for owner := range borders {
				scores[owner] += region
			}
		}
	}
	return scores
}

// GoWinner is the side ahead on area with komi. Komi has a half point, so
// there are no ties.
func GoWinner(b Board) Player {
	scores := AreaScore(b)
	if 2*scores[1] > 2*scores[2]+doubleKomi {
		return 1
	}
	return 2
}

func score(s *GameState) Event {
	return s.finish(GoWinner(s.Board))
}
