package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"odyssey/game"
	"odyssey/meta"
	"odyssey/searcher"
)

type Option func(c *Coordinator)

// Coordinator owns the sessions and drives them: it validates intents, runs
// the rule engine, throws dice and plays AI seats.
type Coordinator struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	evaluator *searcher.Evaluator
	dice      *Dice
	logger    zerolog.Logger
	maxTurns  int
	onFinish  []func(Summary)
}

func WithEvaluator(evaluator *searcher.Evaluator) Option {
	return func(c *Coordinator) {
		if evaluator != nil {
			c.evaluator = evaluator
		}
	}
}

func WithDice(dice *Dice) Option {
	return func(c *Coordinator) {
		if dice != nil {
			c.dice = dice
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithMaxTurns caps the decisions of an AI-only session, per pair of seats.
// A session reaching it is adjourned as a draw.
func WithMaxTurns(turns int) Option {
	return func(c *Coordinator) {
		if turns > 0 {
			c.maxTurns = turns
		}
	}
}

// OnFinish registers a listener called once per finished session. It runs
// with the session locked and must not call back into the coordinator for
// the same session.
func OnFinish(listener func(Summary)) Option {
	return func(c *Coordinator) {
		if listener != nil {
			c.onFinish = append(c.onFinish, listener)
		}
	}
}

func NewCoordinator(options ...Option) *Coordinator {
	c := &Coordinator{ // Default values
		sessions:  make(map[string]*Session),
		evaluator: searcher.NewEvaluator(searcher.WithSeed(meta.DEFAULT_SEED)),
		dice:      NewDice(meta.DEFAULT_SEED),
		logger:    log.Logger,
		maxTurns:  meta.MAX_TURNS,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// StartSession creates a game with one controller per seat and plays until a
// human has to act.
func (c *Coordinator) StartSession(kind game.Kind, controllers []Controller, options ...game.Option) (Result, error) {
	if len(controllers) != kind.Players() {
		return Result{}, fmt.Errorf("%s needs %d players, got %d", kind, kind.Players(), len(controllers))
	}
	state, err := game.NewState(kind, options...)
	if err != nil {
		return Result{}, err
	}
	return c.open(state, controllers)
}

// Restore resumes a saved game under new controllers.
func (c *Coordinator) Restore(blob []byte, controllers []Controller) (Result, error) {
	state, err := game.Deserialize(blob)
	if err != nil {
		return Result{}, err
	}
	if len(controllers) != state.Players {
		return Result{}, fmt.Errorf("%s needs %d players, got %d", state.Kind, state.Players, len(controllers))
	}
	return c.open(state, controllers)
}

func (c *Coordinator) open(state *game.GameState, controllers []Controller) (Result, error) {
	session := newSession(uuid.NewString(), state, controllers, time.Now())
	if state.IsOver() { // Restored after the end: it was reported when it finished
		session.reported = true
		session.ended = session.started
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	c.mu.Lock()
	c.sessions[session.id] = session
	c.mu.Unlock()

	c.logger.Info().Str("session", session.id).Msgf("started %s for %d players", state.Kind, state.Players)
	result := Result{SessionID: session.id}
	err := c.settle(session, &result)
	c.complete(session)
	result.State = session.state.Copy()
	return result, err
}

// Session looks a session up by id.
func (c *Coordinator) Session(id string) (*Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session, ok := c.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return session, nil
}

// SubmitMove plays a human intent and everything that follows it up to the
// next human decision.
func (c *Coordinator) SubmitMove(id string, intent Intent) (Result, error) {
	session, err := c.Session(id)
	if err != nil {
		return Result{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	state := session.state
	if state.IsOver() {
		return Result{}, &game.IllegalMoveError{Move: intentMove(intent), Reason: "the game is over", Err: game.ErrGameOver}
	}
	if intent.Player != state.CurrentPlayer || !session.controllerOf(state.CurrentPlayer).IsHuman() {
		return Result{}, fmt.Errorf("player %d: %w", intent.Player, ErrNotYourTurn)
	}

	move, err := resolve(state, intent)
	if err != nil {
		c.logger.Warn().Str("session", id).Err(err).Msg("rejected intent")
		return Result{}, err
	}
	next, events, err := game.ApplyMove(state, move)
	if err != nil {
		c.logger.Warn().Str("session", id).Err(err).Msg("rejected move")
		return Result{}, err
	}
	session.state = next

	result := Result{
		SessionID: id,
		Moves:     []game.Move{next.History[len(next.History)-1]},
		Events:    events,
	}
	err = c.settle(session, &result)
	c.complete(session)
	result.State = session.state.Copy()
	return result, err
}

// resolve finds the legal move behind an intent.
// resolve finds the legal move an intent names. An intent may leave To as
// game.NoCell when its origin has a single move, e.g. a Mancala sowing.
func resolve(state *game.GameState, intent Intent) (game.Move, error) {
	var only []game.Move
	for _, move := range game.LegalMoves(state) {
		if move.IsStochastic() || move.From != intent.From {
			continue
		}
		if move.To == intent.To {
			return move, nil
		}
		only = append(only, move)
	}
	if intent.To == game.NoCell && intent.From != game.NoCell && len(only) == 1 {
		return only[0], nil
	}
	return game.Move{}, &game.IllegalMoveError{
		Move:   intentMove(intent),
		Reason: fmt.Sprintf("nothing can move from %d to %d", intent.From, intent.To),
	}
}

func intentMove(intent Intent) game.Move {
	return game.Move{Kind: game.StepMove, Player: intent.Player, From: intent.From, To: intent.To}
}

// Suggest ranks the moves of the side to move and picks one as a hint.
func (c *Coordinator) Suggest(id string, difficulty searcher.Difficulty) (game.Move, error) {
	session, err := c.Session(id)
	if err != nil {
		return game.Move{}, err
	}
	state := session.State()
	if state.IsOver() {
		return game.Move{}, game.ErrGameOver
	}
	return c.evaluator.SuggestMove(state, difficulty)
}

// Undo takes back the last human decision along with the dice and AI replies
// that followed it.
func (c *Coordinator) Undo(id string) (Result, error) {
	session, err := c.Session(id)
	if err != nil {
		return Result{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	state := session.state
	if state.IsOver() {
		return Result{}, &game.IllegalMoveError{Move: game.Move{Kind: game.PassMove, From: game.NoCell, To: game.NoCell}, Reason: "the game is over", Err: game.ErrGameOver}
	}
	last := -1
	for i, move := range state.History {
		if session.controllerOf(move.Player).IsHuman() && isDecision(state.Kind, move) {
			last = i
		}
	}
	if last < 0 {
		return Result{}, &game.IllegalMoveError{Move: game.Move{Kind: game.PassMove, From: game.NoCell, To: game.NoCell}, Reason: "there is nothing to undo"}
	}

	previous, err := game.Replay(state.Kind, state.History[:last], game.WithSeed(state.Seed))
	if err != nil {
		return Result{}, err
	}
	session.state = previous
	c.logger.Info().Str("session", id).Msgf("undid %d moves", len(state.History)-last)
	return Result{SessionID: id, State: previous.Copy()}, nil
}

// isDecision tells moves chosen by a player from dice throws and forfeits.
func isDecision(kind game.Kind, move game.Move) bool {
	switch move.Kind {
	case game.RollMove:
		return false
	case game.PassMove:
		return kind == game.Go
	default:
		return true
	}
}

// Abandon discards a session.
func (c *Coordinator) Abandon(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	delete(c.sessions, id)
	c.logger.Info().Str("session", id).Msg("abandoned")
	return nil
}

// Serialize saves the state of a session.
func (c *Coordinator) Serialize(id string) ([]byte, error) {
	session, err := c.Session(id)
	if err != nil {
		return nil, err
	}
	return game.Serialize(session.State())
}

// Summary reports the outcome of a finished session.
func (c *Coordinator) Summary(id string) (Summary, error) {
	session, err := c.Session(id)
	if err != nil {
		return Summary{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.state.IsOver() {
		return Summary{}, ErrNotFinished
	}
	return session.summary(), nil
}

// Sessions lists the ids of the open sessions.
func (c *Coordinator) Sessions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.sessions))
	for id := range c.sessions {
		ids = append(ids, id)
	}
	return ids
}

// complete reports a session the first time it is seen finished.
func (c *Coordinator) complete(session *Session) {
	if !session.state.IsOver() || session.reported {
		return
	}
	session.reported = true
	session.ended = time.Now()
	summary := session.summary()
	c.logger.Info().Str("session", session.id).Msgf("finished %s, winner %q after %d moves", summary.GameKind, summary.WinnerID, len(session.state.History))
	for _, listener := range c.onFinish {
		listener(summary)
	}
}

// IsFatal reports errors after which a session cannot continue.
func IsFatal(err error) bool {
	var invalid *game.InvalidStateError
	return errors.As(err, &invalid)
}
