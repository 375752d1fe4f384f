package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/meta"
)

// ThroughputConfigs are searches of growing parallelism on the same time
// budget.
func ThroughputConfigs() []metrics.AgentConfig {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16, 32} {
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 1,
			Name:       fmt.Sprintf("mcts-%d", goroutines),
			Type:       metrics.SearchAgent,
			Goroutines: goroutines,
			Duration:   meta.TIME_BUDGET,
			Cutoff:     meta.WITH_CUTOFF,
		})
	}
	return configs
}

// RunThroughputExperiment measures how many episodes every config searches
// from the opening of kind.
func RunThroughputExperiment(kind game.Kind, configs []metrics.AgentConfig, opts Options) ([]metrics.ThroughputRecord, error) {
	opts = withDefaults(opts)
	state, err := game.NewState(kind, game.WithSeed(opts.Seed))
	if err != nil {
		return nil, err
	}
	if state.Phase == game.RollPhase {
		// Search from a decision rather than from the dice
		rolls := game.LegalMoves(state)
		if state, _, err = game.ApplyMove(state, rolls[len(rolls)-1]); err != nil {
			return nil, err
		}
	}

	log.Info().Msgf("starting throughput experiment on %s...", kind)

	records := []metrics.ThroughputRecord{}
	for _, config := range configs {
		if config.Type != metrics.SearchAgent {
			continue
		}
		mcts := createMCTS(config)
		for i := 0; i < opts.NumGames; i++ {
			_, metric := mcts.Simulate(state)
			records = append(records, metrics.ThroughputRecord{Agent: config.ID, SearchMetric: metric})
		}
		log.Info().Msgf("agent %d: %d episodes with %d goroutines", config.ID, records[len(records)-1].Episodes, config.Goroutines)
	}

	if opts.Dir != "" {
		writer, err := metrics.NewWriter(opts.Dir, "throughput")
		if err != nil {
			return records, fmt.Errorf("failed to create experiment writer: %w", err)
		}
		if err := writer.WriteAgentConfigs(configs); err != nil {
			return records, fmt.Errorf("failed to store agent configs: %w", err)
		}
		if err := writer.WriteThroughput(records); err != nil {
			return records, fmt.Errorf("failed to write throughput: %w", err)
		}
		log.Info().Msgf("stored throughput records in %s", writer.Dir())
	}
	return records, nil
}
