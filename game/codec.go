package game

import (
	"encoding/json"
	"errors"
)

// Serialize encodes a state as the JSON blob handed to the persistence
// collaborator.
func Serialize(s *GameState) ([]byte, error) {
	if s == nil {
		return nil, &SerializationError{Op: "encode", Err: errors.New("nil state")}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, &SerializationError{Op: "encode", Err: err}
	}
	return data, nil
}

// Deserialize decodes a blob produced by Serialize and checks it describes a
// playable board.
func Deserialize(data []byte) (*GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &SerializationError{Op: "decode", Err: err}
	}
	s.Board.Kind = s.Kind
	if err := validate(&s); err != nil {
		return nil, &SerializationError{Op: "decode", Err: err}
	}
	return &s, nil
}
