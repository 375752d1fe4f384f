package game

// Rules is the per-kind strategy behind the engine. Implementations never see
// an illegal move: the engine validates against LegalMoves first and hands
// Play a private copy of the state.
type Rules interface {
	// Layout places the initial occupants on a fresh board.
	Layout(b *Board)
	// Setup fills the off-board part of a new state (reserve, hands, phase).
	Setup(s *GameState)
	// LegalMoves lists the decisions available to the side to move.
	LegalMoves(s *GameState) []Move
	// Play applies a legal move, advances the turn and detects the end.
	Play(s *GameState, m Move) []Event
	// NoMoves applies the kind's policy when the side to move is stuck.
	NoMoves(s *GameState) []Event
}

// Dice is implemented by rules whose turns start with a chance outcome.
type Dice interface {
	Faces() []int
}

var registry = map[Kind]Rules{
	Senet:          senet{},
	Go:             goban{},
	Mancala:        mancala{},
	Chaturanga:     chaturanga{},
	NineMensMorris: morris{},
	Hnefatafl:      hnefatafl{},
	Pachisi:        pachisiRace,
	Patolli:        patolliRace,
	Hanafuda:       hanafuda{},
}

func rulesFor(kind Kind) (Rules, error) {
	r, ok := registry[kind]
	if !ok {
		return nil, &InvalidStateError{Reason: "no rules for " + kind.String()}
	}
	return r, nil
}

// Faces returns the possible roll outcomes of a dice game, or nil.
func Faces(kind Kind) []int {
	r, err := rulesFor(kind)
	if err != nil {
		return nil
	}
	if d, ok := r.(Dice); ok {
		return d.Faces()
	}
	return nil
}
