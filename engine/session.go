package engine

import (
	"fmt"
	"sync"
	"time"

	"odyssey/experiments/metrics"
	"odyssey/game"
)

// Session is one game and the controllers of its seats. Everything about it
// is guarded by its own lock; sessions share nothing.
type Session struct {
	mu          sync.Mutex
	id          string
	state       *game.GameState
	controllers []Controller
	started     time.Time
	ended       time.Time
	capped      bool // adjourned by the turn cap
	reported    bool
	moveMetrics []metrics.MoveMetric
}

func newSession(id string, state *game.GameState, controllers []Controller, now time.Time) *Session {
	seats := make([]Controller, len(controllers))
	copy(seats, controllers)
	for i := range seats {
		switch {
		case seats[i].Name == "":
			seats[i].Name = fmt.Sprintf("player%d", i+1)
		case seats[i].Agent == nil && seats[i].Name == AI(seats[i].Difficulty).Name:
			// Stock AIs are named by seat.
			seats[i].Name = fmt.Sprintf("%s-%d", seats[i].Name, i+1)
		}
	}
	return &Session{
		id:          id,
		state:       state,
		controllers: seats,
		started:     now,
	}
}

func (s *Session) ID() string {
	return s.id
}

// State returns a copy of the current state.
func (s *Session) State() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Copy()
}

func (s *Session) Controllers() []Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Controller(nil), s.controllers...)
}

func (s *Session) controllerOf(p game.Player) Controller {
	return s.controllers[p.Seat()]
}

func (s *Session) summary() Summary {
	ids := make([]string, len(s.controllers))
	for i, c := range s.controllers {
		ids[i] = c.Name
	}
	summary := Summary{
		GameKind:   s.state.Kind.String(),
		PlayerIDs:  ids,
		DurationMs: s.ended.Sub(s.started).Milliseconds(),
	}
	if s.state.Winner != game.NoPlayer {
		summary.WinnerID = s.controllerOf(s.state.Winner).Name
	}
	return summary
}

// GameMetric describes the game for tournament records.
func (s *Session) GameMetric() metrics.GameMetric {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.ended
	if end.IsZero() {
		end = time.Now()
	}
	return metrics.GameMetric{
		Kind:       s.state.Kind.String(),
		Winner:     int(s.state.Winner),
		StartTime:  s.started,
		EndTime:    end,
		Duration:   end.Sub(s.started),
		TotalMoves: len(s.state.History),
		Capped:     s.capped,
	}
}

// MoveMetrics lists the decisions taken by AI seats.
func (s *Session) MoveMetrics() []metrics.MoveMetric {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]metrics.MoveMetric(nil), s.moveMetrics...)
}
