package game

const (
	MancalaPits  = 6
	MancalaCells = 2*MancalaPits + 2
	MancalaSeeds = 4
)

// mancala plays Kalah: sow counter-clockwise skipping the opponent's store,
// a last seed in the own store earns another turn, a last seed in an own empty
// pit takes the opposite pit.
type mancala struct{}

// MancalaStore returns the store cell of a player.
func MancalaStore(p Player) int {
	return p.Seat()*(MancalaPits+1) + MancalaPits
}

// MancalaPitsOf lists the pits of a player, stores excluded.
func MancalaPitsOf(p Player) []int {
	first := p.Seat() * (MancalaPits + 1)
	pits := make([]int, MancalaPits)
	for i := range pits {
		pits[i] = first + i
	}
	return pits
}

func opponentStore(p Player) int {
	return MancalaStore(Player((p.Seat()+1)%2 + 1))
}

func isStore(cell int) bool {
	return cell == MancalaPits || cell == MancalaCells-1
}

func opposite(pit int) int {
	return 2*MancalaPits - pit
}

func (mancala) Layout(b *Board) {
	for i := range b.Cells {
		owner := Player(i/(MancalaPits+1) + 1)
		seeds := MancalaSeeds
		if isStore(i) {
			seeds = 0
		}
		b.Cells[i] = Piece{Owner: owner, Kind: Seeds, Count: seeds}
	}
}

func (mancala) Setup(s *GameState) {}

func (mancala) LegalMoves(s *GameState) []Move {
	var moves []Move
	for _, pit := range MancalaPitsOf(s.CurrentPlayer) {
		if s.Board.At(pit).Count > 0 {
			moves = append(moves, newMove(StepMove, s.CurrentPlayer, pit, landing(pit, s.Board.At(pit).Count, s.CurrentPlayer)))
		}
	}
	return moves
}

// landing walks the ring to the pit receiving the last seed.
func landing(from, seeds int, player Player) int {
	skip := opponentStore(player)
	cell := from
	for seeds > 0 {
		cell = (cell + 1) % MancalaCells
		if cell == skip {
			continue
		}
		seeds--
	}
	return cell
}

// Sow distributes the seeds of a pit and returns the last pit reached. It is
// exposed for the AI, which simulates moves without the full engine.
func Sow(b *Board, from int, player Player) int {
	skip := opponentStore(player)
	seeds := b.Cells[from].Count
	b.Cells[from].Count = 0
	cell := from
	for seeds > 0 {
		cell = (cell + 1) % MancalaCells
		if cell == skip {
			continue
		}
		b.Cells[cell].Count++
		seeds--
	}
	return cell
}

func (mancala) Play(s *GameState, m Move) []Event {
	player := m.Player
	last := Sow(&s.Board, m.From, player)
	var events []Event

	store := MancalaStore(player)
	ownPit := !isStore(last) && s.Board.At(last).Owner == player
	if ownPit && s.Board.At(last).Count == 1 && s.Board.At(opposite(last)).Count > 0 {
		taken := s.Board.At(opposite(last)).Count
		s.Board.Cells[opposite(last)].Count = 0
		s.Board.Cells[last].Count = 0
		s.Board.Cells[store].Count += taken + 1
		events = append(events, captureEvent(player, opposite(last), taken))
	}

	if sideEmpty(s.Board, 1) || sideEmpty(s.Board, 2) {
		return append(events, sweep(s))
	}
	if last == store {
		return append(events, s.extraTurn())
	}
	s.endTurn()
	return events
}

func (mancala) NoMoves(s *GameState) []Event {
	return []Event{sweep(s)}
}

func sideEmpty(b Board, p Player) bool {
	for _, pit := range MancalaPitsOf(p) {
		if b.At(pit).Count > 0 {
			return false
		}
	}
	return true
}

// sweep ends the game: every player banks the seeds left on their side.
func sweep(s *GameState) Event {
	for _, p := range []Player{1, 2} {
		store := MancalaStore(p)
		for _, pit := range MancalaPitsOf(p) {
			s.Board.Cells[store].Count += s.Board.At(pit).Count
			s.Board.Cells[pit].Count = 0
		}
	}
	one, two := s.Board.At(MancalaStore(1)).Count, s.Board.At(MancalaStore(2)).Count
	switch {
	case one > two:
		return s.finish(1)
	case two > one:
		return s.finish(2)
	default:
		return s.finish(NoPlayer)
	}
}
