package game

import (
	"fmt"

	"odyssey/utils"
)

// LegalMoves returns every legal move of the side to move. Dice games in their
// roll phase return one stochastic roll move per face.
func LegalMoves(s *GameState) []Move {
	if s.Status != InProgress {
		return nil
	}
	r, err := rulesFor(s.Kind)
	if err != nil {
		return nil
	}
	if s.Phase == RollPhase {
		if d, ok := r.(Dice); ok {
			faces := d.Faces()
			moves := make([]Move, 0, len(faces))
			for _, face := range faces {
				m := newMove(RollMove, s.CurrentPlayer, NoCell, NoCell)
				m.Roll = face
				moves = append(moves, m)
			}
			return moves
		}
	}
	return r.LegalMoves(s)
}

// ApplyMove validates the move against LegalMoves and applies it to a copy of
// the state. The input state is left untouched.
func ApplyMove(s *GameState, move Move) (*GameState, []Event, error) {
	if err := validate(s); err != nil {
		return nil, nil, err
	}
	if s.Status == Finished {
		return nil, nil, &IllegalMoveError{Move: move, Reason: "the game is over", Err: ErrGameOver}
	}
	if move.Player != s.CurrentPlayer {
		return nil, nil, illegal(move, "it is not player %d's turn", move.Player)
	}
	legal := LegalMoves(s)
	if len(legal) == 0 {
		return nil, nil, &IllegalMoveError{Move: move, Reason: "no moves are available", Err: ErrNoMovesAvailable}
	}
	canonical, ok := findMove(legal, move)
	if !ok {
		return nil, nil, illegal(move, "%s is not a legal move", move)
	}

	r, _ := rulesFor(s.Kind)
	next := s.Copy()
	var events []Event
	if canonical.Kind == RollMove {
		events = applyRoll(next, canonical)
	} else {
		events = r.Play(next, canonical)
	}
	canonical.Events = cloneSlice(events)
	next.History = append(next.History, canonical)
	return next, events, nil
}

// Forfeit applies the kind's policy for a side with no legal move: dice games
// lose the turn, Mancala and Hanafuda end, the other games are lost by the
// stuck side.
func Forfeit(s *GameState) (*GameState, []Event, error) {
	pass := newMove(PassMove, s.CurrentPlayer, NoCell, NoCell)
	if err := validate(s); err != nil {
		return nil, nil, err
	}
	if s.Status == Finished {
		return nil, nil, &IllegalMoveError{Move: pass, Reason: "the game is over", Err: ErrGameOver}
	}
	if len(LegalMoves(s)) > 0 {
		return nil, nil, illegal(pass, "moves are still available")
	}
	r, _ := rulesFor(s.Kind)
	next := s.Copy()
	events := r.NoMoves(next)
	pass.Roll = s.Roll
	pass.Events = cloneSlice(events)
	next.History = append(next.History, pass)
	return next, events, nil
}

// Adjourn stops an unfinished game as a draw. It is not a move and leaves
// the history untouched.
func Adjourn(s *GameState) (*GameState, []Event, error) {
	if err := validate(s); err != nil {
		return nil, nil, err
	}
	if s.Status == Finished {
		return nil, nil, &IllegalMoveError{Move: newMove(PassMove, s.CurrentPlayer, NoCell, NoCell), Reason: "the game is over", Err: ErrGameOver}
	}
	next := s.Copy()
	return next, []Event{next.finish(NoPlayer)}, nil
}

// Replay rebuilds a state from the opening position and a recorded history.
func Replay(kind Kind, history []Move, options ...Option) (*GameState, error) {
	s, err := NewState(kind, options...)
	if err != nil {
		return nil, err
	}
	for _, m := range history {
		if m.Kind == PassMove && len(LegalMoves(s)) == 0 {
			s, _, err = Forfeit(s)
		} else {
			s, _, err = ApplyMove(s, m)
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Undo returns the state before the last recorded move.
func Undo(s *GameState) (*GameState, error) {
	if len(s.History) == 0 {
		return nil, illegal(newMove(PassMove, s.CurrentPlayer, NoCell, NoCell), "there is nothing to undo")
	}
	return Replay(s.Kind, s.History[:len(s.History)-1], WithSeed(s.Seed))
}

func applyRoll(s *GameState, m Move) []Event {
	s.Roll = m.Roll
	s.Phase = MovePhase
	return []Event{{Type: RollEvent, Player: m.Player, Cell: NoCell, Count: m.Roll}}
}

func findMove(legal []Move, move Move) (Move, bool) {
	for _, candidate := range legal {
		if candidate.Matches(move) {
			return candidate, true
		}
	}
	return Move{}, false
}

// validate catches corrupted states before any rule runs on them.
func validate(s *GameState) error {
	if s == nil {
		return &InvalidStateError{Reason: "nil state"}
	}
	t, err := TopologyOf(s.Kind)
	if err != nil {
		return err
	}
	if _, err := rulesFor(s.Kind); err != nil {
		return err
	}
	if s.Board.Kind != s.Kind || len(s.Board.Cells) != t.Size {
		return &InvalidStateError{Reason: "board does not match " + s.Kind.String()}
	}
	if s.Players != s.Kind.Players() || s.CurrentPlayer < 1 || int(s.CurrentPlayer) > s.Players {
		return &InvalidStateError{Reason: "bad seats"}
	}
	if int(s.Winner) < 0 || int(s.Winner) > s.Players {
		return &InvalidStateError{Reason: "bad winner"}
	}
	if !phaseAllowed(s.Kind, s.Phase) {
		return &InvalidStateError{Reason: fmt.Sprintf("%s has no %s phase", s.Kind, s.Phase)}
	}
	if s.Roll != 0 && utils.FindIndex(Faces(s.Kind), s.Roll) < 0 {
		return &InvalidStateError{Reason: fmt.Sprintf("%s cannot roll %d", s.Kind, s.Roll)}
	}
	switch s.Kind {
	case Go:
		if len(s.Prisoners) != s.Players {
			return &InvalidStateError{Reason: "missing prisoner counts"}
		}
	case NineMensMorris:
		if len(s.InHand) != s.Players {
			return &InvalidStateError{Reason: "missing pieces in hand"}
		}
		for _, n := range s.InHand {
			if n < 0 || n > morrisMen {
				return &InvalidStateError{Reason: "bad pieces in hand"}
			}
		}
	}
	for _, p := range s.Board.Cells {
		if int(p.Owner) < 0 || int(p.Owner) > s.Players {
			return &InvalidStateError{Reason: fmt.Sprintf("piece owned by unknown player %d", p.Owner)}
		}
		if s.Kind == Mancala && (p.Kind != Seeds || p.Count < 0) {
			return &InvalidStateError{Reason: "mancala pits hold seeds only"}
		}
	}
	for _, p := range s.Reserve {
		if p.Owner < 1 || int(p.Owner) > s.Players {
			return &InvalidStateError{Reason: fmt.Sprintf("reserve piece owned by unknown player %d", p.Owner)}
		}
	}
	return nil
}

// phaseAllowed reports whether a kind ever enters phase.
func phaseAllowed(kind Kind, phase Phase) bool {
	switch {
	case kind.UsesDice():
		return phase == RollPhase || phase == MovePhase
	case kind == NineMensMorris:
		return phase == PlacingPhase || phase == MovingPhase || phase == FlyingPhase || phase == RemovingPhase
	default:
		return phase == MovePhase
	}
}
