package engine

import (
	"odyssey/experiments/metrics"
	"odyssey/game"
)

// settle plays everything that needs no human: dice throws, forfeits of a
// stuck side and AI turns. It stops at the next human decision, at the end
// of the game or at the turn cap.
func (c *Coordinator) settle(session *Session, result *Result) error {
	for !session.state.IsOver() {
		state := session.state
		if c.capReached(session) {
			next, events, err := game.Adjourn(state)
			if err != nil {
				return err
			}
			c.logger.Warn().Str("session", session.id).Msgf("stopped after %d moves (no winner yet)", len(state.History))
			session.state = next
			session.capped = true
			result.Events = append(result.Events, events...)
			return nil
		}

		var next *game.GameState
		var events []game.Event
		var err error
		controller := session.controllerOf(state.CurrentPlayer)
		switch {
		case state.Phase == game.RollPhase:
			throw := game.Move{
				Kind:   game.RollMove,
				Player: state.CurrentPlayer,
				From:   game.NoCell,
				To:     game.NoCell,
				Roll:   c.dice.Roll(game.Faces(state.Kind)),
			}
			next, events, err = game.ApplyMove(state, throw)
		case len(game.LegalMoves(state)) == 0:
			c.logger.Debug().Str("session", session.id).Msgf("player %d has no move", state.CurrentPlayer)
			next, events, err = game.Forfeit(state)
		case controller.IsHuman():
			return nil
		default:
			next, events, err = c.think(session, controller, state)
		}
		if err != nil {
			return err
		}

		session.state = next
		result.Moves = append(result.Moves, next.History[len(next.History)-1])
		result.Events = append(result.Events, events...)
	}
	return nil
}

// capReached reports whether an AI-only session has run past the turn cap.
// The cap counts decisions, not dice, and grows with the number of seats.
// Sessions with a human seat are never cut short.
func (c *Coordinator) capReached(session *Session) bool {
	for _, controller := range session.controllers {
		if controller.IsHuman() {
			return false
		}
	}
	state := session.state
	decisions := 0
	for _, move := range state.History {
		if isDecision(state.Kind, move) {
			decisions++
		}
	}
	return decisions >= max(c.maxTurns*state.Players/2, 1)
}

// think plays an AI turn. A custom agent failing or answering with an
// illegal move is replaced by the evaluator.
func (c *Coordinator) think(session *Session, controller Controller, state *game.GameState) (*game.GameState, []game.Event, error) {
	if controller.Agent != nil {
		move, metric, err := controller.Agent.FindMove(state)
		if err == nil {
			var next *game.GameState
			var events []game.Event
			next, events, err = game.ApplyMove(state, move)
			if err == nil {
				c.record(session, controller, next, metric)
				return next, events, nil
			}
		}
		c.logger.Warn().Str("session", session.id).Err(err).Msgf("agent %s failed, falling back to the evaluator", controller.Name)
	}

	move, err := c.evaluator.SuggestMove(state, controller.Difficulty)
	if err != nil {
		return nil, nil, err
	}
	next, events, err := game.ApplyMove(state, move)
	if err != nil {
		return nil, nil, err
	}
	c.record(session, controller, next, metrics.SearchMetric{})
	return next, events, nil
}

func (c *Coordinator) record(session *Session, controller Controller, next *game.GameState, metric metrics.SearchMetric) {
	move := next.History[len(next.History)-1]
	c.logger.Debug().Str("session", session.id).Msgf("%s played %s", controller.Name, move)
	session.moveMetrics = append(session.moveMetrics, metrics.MoveMetric{
		Step:         len(next.History),
		Player:       int(move.Player),
		Move:         move.String(),
		Agent:        controller.Name,
		SearchMetric: metric,
	})
}
