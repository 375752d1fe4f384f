package experiments

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"odyssey/engine"
	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/leaderboard"
	"odyssey/meta"
	"odyssey/searcher"
	"odyssey/searcher/agent"
)

// Options tune a tournament. Zero values fall back to the meta defaults.
type Options struct {
	NumGames int                 // Per match up
	Workers  int                 // Games played at once
	Seed     uint64              // Dice, AI choices and deals
	Ledger   *leaderboard.Ledger // Rates the agents when set
	Dir      string              // Writes CSV records under Dir when set
	MaxTurns int
}

// Report is the outcome of a tournament.
type Report struct {
	Name        string
	Kind        game.Kind
	Configs     []metrics.AgentConfig
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
	Wins        map[int]int // by AgentConfig.ID
	Draws       int
	Dir         string
}

var difficultyConfigs = []metrics.AgentConfig{
	{ID: 1, Name: "easy", Type: metrics.HeuristicAgent, Difficulty: searcher.Easy.String()},
	{ID: 2, Name: "medium", Type: metrics.HeuristicAgent, Difficulty: searcher.Medium.String()},
	{ID: 3, Name: "hard", Type: metrics.HeuristicAgent, Difficulty: searcher.Hard.String()},
}

// RunDifficultyExperiment pits the difficulties against each other.
func RunDifficultyExperiment(kind game.Kind, opts Options) (Report, error) {
	matchUps := [][]metrics.AgentConfig{}
	for i, a := range difficultyConfigs {
		for _, b := range difficultyConfigs[i+1:] {
			matchUps = append(matchUps, []metrics.AgentConfig{a, b})
		}
	}
	return Run("difficulty", kind, difficultyConfigs, matchUps, opts)
}

// RunSearchExperiment pairs tree searches of growing parallelism against the
// hard heuristic agent.
func RunSearchExperiment(kind game.Kind, opts Options) (Report, error) {
	baseline := metrics.AgentConfig{ID: 1, Name: "hard", Type: metrics.HeuristicAgent, Difficulty: searcher.Hard.String()}
	configs := []metrics.AgentConfig{baseline}
	for i, goroutines := range []int{1, 4, meta.GO_ROUTINES} {
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 2,
			Name:       fmt.Sprintf("mcts-%d", goroutines),
			Type:       metrics.SearchAgent,
			Goroutines: goroutines,
			Duration:   meta.TIME_BUDGET,
			Cutoff:     meta.WITH_CUTOFF,
		})
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Run("search", kind, configs, matchUps, opts)
}

// RunCutoffExperiment compares playout cutoffs at a fixed episode budget.
func RunCutoffExperiment(kind game.Kind, opts Options) (Report, error) {
	baseline := metrics.AgentConfig{ID: 1, Name: "full", Type: metrics.SearchAgent, Goroutines: meta.GO_ROUTINES, Episodes: meta.EPISODES, Cutoff: searcher.MaxCutoff}
	configs := []metrics.AgentConfig{baseline}
	for i, cutoff := range []int{10, 50, meta.WITH_CUTOFF} {
		config := baseline
		config.ID = i + 2
		config.Name = fmt.Sprintf("cutoff-%d", cutoff)
		config.Cutoff = cutoff
		configs = append(configs, config)
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Run("cutoff", kind, configs, matchUps, opts)
}

type job struct {
	id      int
	matchUp []metrics.AgentConfig
	seats   []metrics.AgentConfig
}

type outcome struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
	err    error
}

// Run plays NumGames games per match up on a bounded pool of workers. Seats
// alternate between games so that no agent always starts.
func Run(name string, kind game.Kind, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) (Report, error) {
	opts = withDefaults(opts)
	coordinator := newCoordinator(opts)

	jobs := []job{}
	for _, matchUp := range matchUps {
		for i := 0; i < opts.NumGames; i++ {
			jobs = append(jobs, job{id: len(jobs) + 1, matchUp: matchUp, seats: seating(matchUp, kind.Players(), i)})
		}
	}

	log.Info().Msgf("starting %s experiment on %s: %d games...", name, kind, len(jobs))

	task := make(chan job, len(jobs))
	for _, j := range jobs {
		task <- j
	}
	close(task)

	var mu sync.Mutex
	outcomes := make([]outcome, 0, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range task {
				o := runGame(coordinator, kind, j, opts.Seed)
				mu.Lock()
				outcomes = append(outcomes, o)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	report := Report{Name: name, Kind: kind, Configs: configs, Wins: make(map[int]int)}
	var errs []error
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		report.GameRecords = append(report.GameRecords, o.record)
		report.MoveRecords = append(report.MoveRecords, o.moves...)
		if o.record.Winner == 0 {
			report.Draws++
		} else {
			report.Wins[o.record.WinnerAgent]++
		}
	}
	sort.Slice(report.GameRecords, func(i, j int) bool { return report.GameRecords[i].ID < report.GameRecords[j].ID })
	sort.SliceStable(report.MoveRecords, func(i, j int) bool { return report.MoveRecords[i].Game < report.MoveRecords[j].Game })
	if err := errors.Join(errs...); err != nil {
		return report, err
	}

	log.Info().Msgf("completed %s experiment: wins %v, draws %d", name, report.Wins, report.Draws)

	if opts.Dir != "" {
		dir, err := store(name, opts.Dir, report)
		if err != nil {
			return report, err
		}
		report.Dir = dir
	}
	return report, nil
}

func withDefaults(opts Options) Options {
	if opts.NumGames <= 0 {
		opts.NumGames = meta.NUM_GAMES
	}
	if opts.Workers <= 0 {
		opts.Workers = meta.GO_ROUTINES
	}
	if opts.Seed == 0 {
		opts.Seed = meta.DEFAULT_SEED
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = meta.MAX_TURNS
	}
	return opts
}

func newCoordinator(opts Options) *engine.Coordinator {
	options := []engine.Option{
		engine.WithEvaluator(searcher.NewEvaluator(searcher.WithSeed(opts.Seed))),
		engine.WithDice(engine.NewDice(opts.Seed)),
		engine.WithLogger(log.Logger.Level(zerolog.WarnLevel)),
		engine.WithMaxTurns(opts.MaxTurns),
	}
	if opts.Ledger != nil {
		options = append(options, engine.OnFinish(opts.Ledger.Observe))
	}
	return engine.NewCoordinator(options...)
}

// seating fills the seats of a kind from a match up, rotated by the round
// index.
func seating(matchUp []metrics.AgentConfig, players, round int) []metrics.AgentConfig {
	seats := make([]metrics.AgentConfig, players)
	for i := range seats {
		seats[i] = matchUp[(i+round)%len(matchUp)]
	}
	return seats
}

// runGame executes a single game between the seated agents
func runGame(coordinator *engine.Coordinator, kind game.Kind, j job, seed uint64) outcome {
	controllers := make([]engine.Controller, len(j.seats))
	for i, config := range j.seats {
		controller, err := createController(config)
		if err != nil {
			return outcome{err: err}
		}
		controllers[i] = controller
	}

	result, err := coordinator.StartSession(kind, controllers, game.WithSeed(seed+uint64(j.id)))
	if err != nil {
		return outcome{err: fmt.Errorf("game %d: %w", j.id, err)}
	}
	session, err := coordinator.Session(result.SessionID)
	if err != nil {
		return outcome{err: err}
	}
	defer coordinator.Abandon(result.SessionID)

	record := metrics.GameRecord{
		ID:            j.id,
		Agent1:        j.matchUp[0].ID,
		Agent2:        j.matchUp[len(j.matchUp)-1].ID,
		StartingAgent: j.seats[0].ID,
		GameMetric:    session.GameMetric(),
	}
	if winner := result.State.Winner; winner != game.NoPlayer {
		record.WinnerAgent = j.seats[winner.Seat()].ID
	}
	moves := []metrics.MoveRecord{}
	for _, mm := range session.MoveMetrics() {
		moves = append(moves, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
	}

	log.Debug().Msgf("completed game %d with winner: %d", j.id, record.Winner)
	return outcome{record: record, moves: moves}
}

func createController(config metrics.AgentConfig) (engine.Controller, error) {
	name := config.Name
	if name == "" {
		name = fmt.Sprintf("agent%d", config.ID)
	}
	switch config.Type {
	case metrics.SearchAgent:
		return engine.Bot(name, agent.NewEvaluationAgent(createMCTS(config))), nil
	case metrics.HeuristicAgent, "":
		difficulty, err := searcher.ParseDifficulty(config.Difficulty)
		if err != nil {
			return engine.Controller{}, err
		}
		controller := engine.AI(difficulty)
		controller.Name = name
		return controller, nil
	default:
		return engine.Controller{}, fmt.Errorf("unknown agent type %q", config.Type)
	}
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Episodes <= 0 && config.Duration <= 0 {
		options = append(options, searcher.WithDuration(meta.TIME_BUDGET))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}

func store(name, dir string, report Report) (string, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(report.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(report.GameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.MoveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
