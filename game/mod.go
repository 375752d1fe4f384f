package game

import "fmt"

// Player identifies a seat at the table. Seats are numbered from 1; the seat
// index used by track games is Player-1.
type Player int

const NoPlayer Player = 0

// Seat returns the zero-based seat index of the player.
func (p Player) Seat() int {
	return int(p) - 1
}

type StateHash uint64

// Status is the top-level lifecycle of a game: Setup -> InProgress -> Finished.
type Status int

const (
	Setup Status = iota
	InProgress
	Finished
)

func (s Status) String() string {
	switch s {
	case Setup:
		return "setup"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Phase is the sub-phase of an in-progress game. Dice games alternate between
// RollPhase and MovePhase, Nine Men's Morris walks through Placing, Moving and
// Flying and enters Removing after a mill.
type Phase int

const (
	MovePhase Phase = iota
	RollPhase
	PlacingPhase
	MovingPhase
	FlyingPhase
	RemovingPhase
)

var phaseNames = []string{"move", "roll", "placing", "moving", "flying", "removing"}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{Setup, InProgress, Finished} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
