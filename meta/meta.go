// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of goroutines to use for a tree search.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the playout cutoff for MCTS.
const WITH_CUTOFF = 100

// MAX_TURNS caps the decisions of an AI-only game, per pair of seats, before it
// is adjourned as a draw.
const MAX_TURNS = 1000

// DEFAULT_SEED seeds dice and AI choices when none is configured.
const DEFAULT_SEED = 1

// HTTP_ADDR is the default listen address of the HTTP adapter.
const HTTP_ADDR = ":8080"

// TIME_BUDGET is the default search time of a tournament agent.
const TIME_BUDGET = 10 * time.Millisecond

// NUM_GAMES is the default number of games per tournament matchup.
const NUM_GAMES = 4
