package game

import "fmt"

// MoveKind classifies a transition.
type MoveKind int

const (
	StepMove    MoveKind = iota // piece moves From -> To
	PlaceMove                   // new piece placed on To
	RemoveMove                  // opponent piece removed from To after a mill
	RollMove                    // dice / sticks / beans outcome
	PassMove                    // turn passed or forfeited
	EnterMove                   // track piece leaves home for To
	BearOffMove                 // track piece leaves the board from From
)

var moveKindNames = []string{"step", "place", "remove", "roll", "pass", "enter", "bear_off"}

func (k MoveKind) String() string {
	if int(k) < 0 || int(k) >= len(moveKindNames) {
		return "unknown"
	}
	return moveKindNames[k]
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	for i, name := range moveKindNames {
		if name == string(text) {
			*k = MoveKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown move kind %q", text)
}

// Move is an immutable record of one legal transition. The same value is
// returned by the engine and appended to the history.
type Move struct {
	Kind   MoveKind `json:"kind"`
	Player Player   `json:"player"`
	From   int      `json:"from"`
	To     int      `json:"to"`
	Roll   int      `json:"roll"`
	Events []Event  `json:"events"`
}

// IsStochastic reports whether the move is a chance outcome rather than a decision.
func (m Move) IsStochastic() bool {
	return m.Kind == RollMove
}

// Matches compares the decision part of two moves, ignoring events.
func (m Move) Matches(other Move) bool {
	return m.Kind == other.Kind &&
		m.Player == other.Player &&
		m.From == other.From &&
		m.To == other.To &&
		m.Roll == other.Roll
}

// Captures lists the cells captured by the move.
func (m Move) Captures() []int {
	var cells []int
	for _, e := range m.Events {
		if e.Type == CaptureEvent {
			cells = append(cells, e.Cell)
		}
	}
	return cells
}

func (m Move) String() string {
	switch m.Kind {
	case RollMove:
		return fmt.Sprintf("P%d roll %d", m.Player, m.Roll)
	case PassMove:
		return fmt.Sprintf("P%d pass", m.Player)
	case PlaceMove, RemoveMove, EnterMove:
		return fmt.Sprintf("P%d %s %d", m.Player, m.Kind, m.To)
	default:
		return fmt.Sprintf("P%d %s %d->%d", m.Player, m.Kind, m.From, m.To)
	}
}

func newMove(kind MoveKind, player Player, from, to int) Move {
	return Move{Kind: kind, Player: player, From: from, To: to}
}

// EventType classifies the side effects of a move.
type EventType int

const (
	CaptureEvent EventType = iota
	MillEvent
	PromotionEvent
	ExtraTurnEvent
	PassEvent
	ForfeitEvent
	WinEvent
	DrawEvent
	RollEvent
	FinishEvent
)

var eventTypeNames = []string{"capture", "mill", "promotion", "extra_turn", "pass", "forfeit", "win", "draw", "roll", "finish"}

func (t EventType) String() string {
	if int(t) < 0 || int(t) >= len(eventTypeNames) {
		return "unknown"
	}
	return eventTypeNames[t]
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	for i, name := range eventTypeNames {
		if name == string(text) {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// Event is a side effect of a move. Cell is NoCell when the event is not tied
// to a cell. For mills Count is the number of opposing pieces to remove; for
// captures it is the number of stones or seeds taken.
type Event struct {
	Type   EventType `json:"type"`
	Player Player    `json:"player"`
	Cell   int       `json:"cell"`
	Count  int       `json:"count"`
}

func captureEvent(player Player, cell, count int) Event {
	return Event{Type: CaptureEvent, Player: player, Cell: cell, Count: count}
}

func playerEvent(t EventType, player Player) Event {
	return Event{Type: t, Player: player, Cell: NoCell}
}
