package game

import (
	"encoding/binary"
	"hash/fnv"
)

// GameState is the full state of one game. It is owned by a single session and
// only changes through ApplyMove / Forfeit, which always return a new copy.
type GameState struct {
	Kind          Kind      `json:"kind"`
	Players       int       `json:"players"`
	Board         Board     `json:"board"`
	Reserve       []Piece   `json:"reserve"` // off-board pieces: at home or borne off
	CurrentPlayer Player    `json:"currentPlayer"`
	Phase         Phase     `json:"phase"`
	Status        Status    `json:"status"`
	Roll          int       `json:"roll"`      // pending dice value, dice games only
	InHand        []int     `json:"inHand"`    // Morris pieces still to place, by seat
	Prisoners     []int     `json:"prisoners"` // Go stones captured, by seat
	Passes        int       `json:"passes"`    // consecutive Go passes
	KoHash        StateHash `json:"koHash"`    // Go board a placement may not recreate
	Seed          uint64    `json:"seed"`      // Hanafuda deal
	History       []Move    `json:"history"`
	Winner        Player    `json:"winner"`
}

type setup struct {
	seed uint64
}

type Option func(*setup)

// WithSeed fixes the shuffle of games dealt from a deck.
func WithSeed(seed uint64) Option {
	return func(s *setup) {
		s.seed = seed
	}
}

// NewState creates the opening state of a game.
func NewState(kind Kind, options ...Option) (*GameState, error) {
	cfg := &setup{seed: 1}
	for _, option := range options {
		option(cfg)
	}
	r, err := rulesFor(kind)
	if err != nil {
		return nil, err
	}
	board, err := CreateBoard(kind)
	if err != nil {
		return nil, err
	}
	s := &GameState{
		Kind:          kind,
		Players:       kind.Players(),
		Board:         board,
		CurrentPlayer: 1,
		Phase:         MovePhase,
		Status:        Setup,
		Seed:          cfg.seed,
	}
	if kind.UsesDice() {
		s.Phase = RollPhase
	}
	r.Setup(s)
	s.Status = InProgress
	return s, nil
}

// Copy returns a deep copy of the state.
func (gs GameState) Copy() *GameState {
	next := gs
	next.Board = gs.Board.Clone()
	next.Reserve = cloneSlice(gs.Reserve)
	next.InHand = cloneSlice(gs.InHand)
	next.Prisoners = cloneSlice(gs.Prisoners)
	if gs.History != nil {
		next.History = make([]Move, len(gs.History))
		for i, m := range gs.History {
			m.Events = cloneSlice(m.Events)
			next.History[i] = m
		}
	}
	return &next
}

// cloneSlice copies a slice, keeping nil and empty apart.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func (gs *GameState) NextPlayer() Player {
	return gs.CurrentPlayer%Player(gs.Players) + 1
}

func (gs *GameState) Opponent(p Player) Player {
	return p%Player(gs.Players) + 1
}

func (gs *GameState) IsOver() bool {
	return gs.Status == Finished
}

// endTurn hands the turn to the next seat. Dice games go back to rolling.
func (gs *GameState) endTurn() {
	gs.CurrentPlayer = gs.NextPlayer()
	gs.Roll = 0
	if gs.Kind.UsesDice() {
		gs.Phase = RollPhase
	}
}

// extraTurn keeps the turn with the current player.
func (gs *GameState) extraTurn() Event {
	gs.Roll = 0
	if gs.Kind.UsesDice() {
		gs.Phase = RollPhase
	}
	return playerEvent(ExtraTurnEvent, gs.CurrentPlayer)
}

// finish closes the game. A NoPlayer winner is a draw.
func (gs *GameState) finish(winner Player) Event {
	gs.Status = Finished
	gs.Winner = winner
	gs.Roll = 0
	if winner == NoPlayer {
		return playerEvent(DrawEvent, NoPlayer)
	}
	return playerEvent(WinEvent, winner)
}

// PlayerIDs lists the seats of the game.
func (gs *GameState) PlayerIDs() []Player {
	ids := make([]Player, gs.Players)
	for i := range ids {
		ids[i] = Player(i + 1)
	}
	return ids
}

// Hash fingerprints the position (board, reserve, side to move and phase).
func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, uint64(gs.Board.Hash()))
	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentPlayer))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Phase))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Roll))
	for _, p := range gs.Reserve {
		binary.Write(hasher, binary.LittleEndian, int64(p.Owner))
		binary.Write(hasher, binary.LittleEndian, int64(p.ID))
		binary.Write(hasher, binary.LittleEndian, p.Finished)
	}
	for _, n := range gs.InHand {
		binary.Write(hasher, binary.LittleEndian, int64(n))
	}
	return StateHash(hasher.Sum64())
}

// reserveOf lists the indices in Reserve of the player's pieces matching keep.
func (gs *GameState) reserveOf(player Player, keep func(Piece) bool) []int {
	var idx []int
	for i, p := range gs.Reserve {
		if p.Owner == player && keep(p) {
			idx = append(idx, i)
		}
	}
	return idx
}

// takeReserve removes and returns the reserve piece at i.
func (gs *GameState) takeReserve(i int) Piece {
	p := gs.Reserve[i]
	gs.Reserve = append(gs.Reserve[:i], gs.Reserve[i+1:]...)
	return p
}
