package game

const RaceTrackLength = 52

// race covers the cross-and-circle games: pieces enter from home on a given
// throw, run one lap from their seat's entry square and bear off with an exact
// throw. Landing on an unguarded opponent sends it home.
type race struct {
	pieces  int
	stride  int // entry square offset between seats
	enterOn int
	extraOn int
	faces   []int
	safe    map[int]bool
}

var pachisiRace = race{
	pieces:  4,
	stride:  13,
	enterOn: 6,
	extraOn: 6,
	faces:   []int{1, 2, 3, 4, 5, 6},
	safe:    map[int]bool{0: true, 8: true, 13: true, 21: true, 26: true, 34: true, 39: true, 47: true},
}

// Patolli throws five beans; a throw of zero moves nothing.
var patolliRace = race{
	pieces:  6,
	stride:  26,
	enterOn: 1,
	extraOn: 5,
	faces:   []int{0, 1, 2, 3, 4, 5},
	safe:    map[int]bool{0: true, 26: true},
}

func (r race) Faces() []int {
	return r.faces
}

// Entry returns the square where a seat's pieces come onto the track.
func (r race) Entry(p Player) int {
	return p.Seat() * r.stride % RaceTrackLength
}

// Progress is the distance a piece on cell has covered from its entry.
func (r race) Progress(p Player, cell int) int {
	return (cell - r.Entry(p) + RaceTrackLength) % RaceTrackLength
}

func (r race) IsSafe(cell int) bool {
	return r.safe[cell]
}

func (race) Layout(b *Board) {}

func (r race) Setup(s *GameState) {
	s.Reserve = make([]Piece, 0, s.Players*r.pieces)
	for _, p := range s.PlayerIDs() {
		for id := 0; id < r.pieces; id++ {
			s.Reserve = append(s.Reserve, Piece{Owner: p, Kind: Man, ID: id, Home: true})
		}
	}
}

func (r race) LegalMoves(s *GameState) []Move {
	player, roll := s.CurrentPlayer, s.Roll
	if roll == 0 {
		return nil
	}
	var moves []Move
	add := func(kind MoveKind, from, to int) {
		m := newMove(kind, player, from, to)
		m.Roll = roll
		moves = append(moves, m)
	}
	if roll == r.enterOn && len(s.reserveOf(player, isHome)) > 0 && r.canLand(s.Board, r.Entry(player), player) {
		add(EnterMove, NoCell, r.Entry(player))
	}
	for _, from := range s.Board.CellsOf(player) {
		next := r.Progress(player, from) + roll
		switch {
		case next == RaceTrackLength:
			add(BearOffMove, from, OffBoard)
		case next < RaceTrackLength:
			to := (r.Entry(player) + next) % RaceTrackLength
			if r.canLand(s.Board, to, player) {
				add(StepMove, from, to)
			}
		}
	}
	return moves
}

func isHome(p Piece) bool {
	return p.Home
}

func (r race) canLand(b Board, to int, player Player) bool {
	target := b.At(to)
	if target.IsEmpty() {
		return true
	}
	return target.Owner != player && !r.safe[to]
}

func (r race) Play(s *GameState, m Move) []Event {
	var events []Event
	switch m.Kind {
	case EnterMove:
		home := s.reserveOf(m.Player, isHome)
		piece := s.takeReserve(home[0])
		piece.Home = false
		events = r.land(s, piece, m.To, events)
	case BearOffMove:
		piece := s.Board.Remove(m.From)
		piece.Safe = false
		piece.Finished = true
		s.Reserve = append(s.Reserve, piece)
		events = append(events, Event{Type: FinishEvent, Player: m.Player, Cell: m.From, Count: 1})
		if len(s.reserveOf(m.Player, func(p Piece) bool { return p.Finished })) == r.pieces {
			return append(events, s.finish(m.Player))
		}
	default:
		events = r.land(s, s.Board.Remove(m.From), m.To, events)
	}

	if m.Roll == r.extraOn {
		return append(events, s.extraTurn())
	}
	s.endTurn()
	return events
}

// land puts a piece on a square, sending an opponent found there home.
func (r race) land(s *GameState, piece Piece, to int, events []Event) []Event {
	if target := s.Board.At(to); !target.IsEmpty() {
		target.Home, target.Safe = true, false
		s.Reserve = append(s.Reserve, target)
		events = append(events, captureEvent(piece.Owner, to, 1))
	}
	piece.Safe = r.safe[to]
	s.Board.Set(to, piece)
	return events
}

func (race) NoMoves(s *GameState) []Event {
	player := s.CurrentPlayer
	s.endTurn()
	return []Event{playerEvent(ForfeitEvent, player)}
}

func raceOf(kind Kind) (race, bool) {
	r, ok := registry[kind].(race)
	return r, ok
}

// EntryCell returns where a seat's pieces enter a race track, or NoCell for
// kinds without one.
func EntryCell(kind Kind, p Player) int {
	r, ok := raceOf(kind)
	if !ok {
		return NoCell
	}
	return r.Entry(p)
}

// TrackProgress is how far a piece on cell has run from its seat's entry.
func TrackProgress(kind Kind, p Player, cell int) int {
	if kind == Senet {
		return cell
	}
	r, ok := raceOf(kind)
	if !ok {
		return 0
	}
	return r.Progress(p, cell)
}

// IsSafeCell reports whether pieces on cell cannot be captured.
func IsSafeCell(kind Kind, cell int) bool {
	if kind == Senet {
		return IsSenetSafe(cell)
	}
	r, ok := raceOf(kind)
	return ok && r.IsSafe(cell)
}
