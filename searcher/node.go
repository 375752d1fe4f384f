package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"odyssey/game"
)

type Node interface {
	SelectOrExpand(state *game.GameState, random *rand.Rand) (child Node, childState *game.GameState, selected bool)
	Backup(reward func(game.Player) float64) Node
	Visits() float64
	applyLoss()
	score(policy *uct) float64
}

// newNode creates the node of a state: a chance node while dice are due,
// a decision node otherwise.
func newNode(parent Node, mover game.Player, state *game.GameState) Node {
	if state.Phase == game.RollPhase && !state.IsOver() {
		return newChance(parent, mover)
	}
	return newDecision(parent, mover, state)
}

// movesOf lists the moves searched from a state. A stuck side gets a single
// pass, played through the kind's forfeit policy.
func movesOf(state *game.GameState) []game.Move {
	if state.IsOver() {
		return nil
	}
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return []game.Move{{Kind: game.PassMove, Player: state.CurrentPlayer, From: game.NoCell, To: game.NoCell}}
	}
	return moves
}

func play(state *game.GameState, move game.Move) *game.GameState {
	var next *game.GameState
	var err error
	if move.Kind == game.PassMove && len(game.LegalMoves(state)) == 0 {
		next, _, err = game.Forfeit(state)
	} else {
		next, _, err = game.ApplyMove(state, move)
	}
	if err != nil {
		panic(fmt.Sprintf("search played an illegal move: %v", err))
	}
	return next
}

// rewarder maps the players of a final (or cut off) state to rewards in [0, 1].
func rewarder(state *game.GameState) func(game.Player) float64 {
	return func(player game.Player) float64 {
		if !state.IsOver() {
			return (Standing(state, player) + 1) / 2
		}
		switch state.Winner {
		case player:
			return Win
		case game.NoPlayer:
			return Draw
		default:
			return Loss
		}
	}
}
