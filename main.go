package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"odyssey/communication"
	"odyssey/engine"
	"odyssey/experiments"
	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/leaderboard"
	"odyssey/meta"
	"odyssey/searcher"
	"odyssey/searcher/agent"
)

func main() {
	mode := flag.String("mode", "serve", "serve, tournament or agent")
	addr := flag.String("addr", meta.HTTP_ADDR, "HTTP listen address")
	kindName := flag.String("game", "mancala", "Game played by a tournament")
	experiment := flag.String("experiment", "difficulty", "Tournament: difficulty, search, cutoff or throughput")
	numGames := flag.Int("games", meta.NUM_GAMES, "Games per match up")
	workers := flag.Int("workers", meta.GO_ROUTINES, "Games played at once")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel playouts")
	episodes := flag.Int("episodes", 0, "Number of playouts per move")
	duration := flag.Duration("duration", meta.TIME_BUDGET, "Duration of playouts per move")
	cutoff := flag.Int("cutoff", meta.WITH_CUTOFF, "Playout cutoff")
	temperature := flag.Float64("temperature", 0, "Agent samples moves at this temperature when positive")
	seed := flag.Uint64("seed", meta.DEFAULT_SEED, "Seed of dice and AI choices")
	maxTurns := flag.Int("max-turns", meta.MAX_TURNS, "Moves before a game is adjourned")
	dir := flag.String("dir", "", "Directory of tournament records")
	debug := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	var err error
	switch *mode {
	case "serve":
		err = serve(*addr, *seed, *maxTurns)
	case "agent":
		mcts := createMCTS(*goroutines, *episodes, *duration, *cutoff)
		a := agent.NewEvaluationAgent(mcts)
		if *temperature > 0 {
			a = agent.NewTrainingAgent(mcts, *temperature, *seed)
		}
		log.Info().Msgf("agent listening on %s", *addr)
		err = http.ListenAndServe(*addr, agent.NewServer(a))
	case "tournament":
		err = tournament(*experiment, *kindName, experiments.Options{
			NumGames: *numGames,
			Workers:  *workers,
			Seed:     *seed,
			Ledger:   leaderboard.NewLedger(),
			Dir:      *dir,
			MaxTurns: *maxTurns,
		})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func serve(addr string, seed uint64, maxTurns int) error {
	server := communication.NewServer(leaderboard.NewLedger(),
		engine.WithEvaluator(searcher.NewEvaluator(searcher.WithSeed(seed))),
		engine.WithDice(engine.NewDice(seed)),
		engine.WithMaxTurns(maxTurns),
	)
	log.Info().Msgf("listening on %s", addr)
	return http.ListenAndServe(addr, server.Routes())
}

func tournament(experiment, kindName string, opts experiments.Options) error {
	kind, err := game.ParseKind(kindName)
	if err != nil {
		return err
	}

	var report experiments.Report
	switch experiment {
	case "difficulty":
		report, err = experiments.RunDifficultyExperiment(kind, opts)
	case "search":
		report, err = experiments.RunSearchExperiment(kind, opts)
	case "cutoff":
		report, err = experiments.RunCutoffExperiment(kind, opts)
	case "throughput":
		var records []metrics.ThroughputRecord
		records, err = experiments.RunThroughputExperiment(kind, experiments.ThroughputConfigs(), opts)
		for _, record := range records {
			fmt.Printf("agent %d: %d goroutines, %.1f episodes/s\n", record.Agent, record.Goroutines, record.EpisodesPerSecond())
		}
		return err
	default:
		return fmt.Errorf("unknown experiment %q", experiment)
	}
	if err != nil {
		return err
	}

	for _, config := range report.Configs {
		fmt.Printf("%-12s %d wins\n", config.Name, report.Wins[config.ID])
	}
	fmt.Printf("%-12s %d\n", "draws", report.Draws)
	for _, profile := range opts.Ledger.Top(len(report.Configs)) {
		fmt.Printf("%-12s rating %d (%d/%d won)\n", profile.ID, profile.Rating, profile.GamesWon, profile.GamesPlayed)
	}
	return nil
}

func createMCTS(goroutines, episodes int, duration time.Duration, cutoff int) *searcher.MCTS {
	options := []searcher.Option{searcher.WithCutoff(cutoff), searcher.WithMetrics()}
	if episodes > 0 {
		options = append(options, searcher.WithEpisodes(episodes))
	} else {
		options = append(options, searcher.WithDuration(duration))
	}
	return searcher.NewMCTS(goroutines, options...)
}
