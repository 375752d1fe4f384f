package game

import (
	"errors"
	"fmt"
)

// ErrNoMovesAvailable is returned when the side to move has no legal move.
// It is recoverable: the caller applies the kind's pass / forfeit policy.
var ErrNoMovesAvailable = errors.New("no moves available")

// ErrGameOver is returned for moves submitted after the game finished.
var ErrGameOver = errors.New("game is over")

// IllegalMoveError is returned when a move is not among the legal moves of
// the state. The reason is safe to show to a player.
type IllegalMoveError struct {
	Move   Move
	Reason string
	Err    error // ErrGameOver or ErrNoMovesAvailable when one of them is the cause
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return e.Err
}

func illegal(m Move, format string, args ...any) error {
	return &IllegalMoveError{Move: m, Reason: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports a corrupted board or configuration. It is fatal
// for the session that hit it.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid game state: " + e.Reason
}

// SerializationError wraps a failure to encode or decode a saved state.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s game state: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// UserMessage phrases an engine error for a player. Internal details never
// leak past it.
func UserMessage(err error) string {
	var illegalMove *IllegalMoveError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &illegalMove):
		return "that move isn't allowed: " + illegalMove.Reason
	case errors.Is(err, ErrNoMovesAvailable):
		return "that move isn't allowed: no moves are available this turn"
	case errors.Is(err, ErrGameOver):
		return "that move isn't allowed: the game is over"
	default:
		return "that move isn't allowed: something went wrong with this game"
	}
}
