package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Agent types of AgentConfig.Type.
const (
	HeuristicAgent = "heuristic"
	SearchAgent    = "mcts"
)

// AgentConfig describes a tournament agent: a heuristic agent at a
// difficulty, or a tree search with a budget.
type AgentConfig struct {
	ID         int
	Name       string
	Type       string
	Difficulty string
	Goroutines int
	Duration   time.Duration
	Episodes   int
	Cutoff     int
}

type GameRecord struct {
	ID            int
	Agent1        int // AgentConfig.ID
	Agent2        int // AgentConfig.ID
	StartingAgent int // AgentConfig.ID of the first seat
	WinnerAgent   int // AgentConfig.ID, 0 for a draw
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// ThroughputRecord is the search speed of a config on one position.
type ThroughputRecord struct {
	Agent int // AgentConfig.ID
	SearchMetric
}

func (r ThroughputRecord) EpisodesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Episodes) / r.Duration.Seconds()
}

type Writer struct {
	baseDir string
}

func NewWriter(dir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Type,
			config.Difficulty,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
		})
	}
	header := []string{"id", "name", "type", "difficulty", "goroutines", "duration", "episodes", "cutoff"}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Kind,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingAgent),
			strconv.Itoa(record.WinnerAgent),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalMoves),
			strconv.FormatBool(record.Capped),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "kind", "agent1", "agent2", "starting_agent", "winner_agent", "winner_seat", "total_moves", "capped", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Agent,
			record.Move,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	header := []string{"game", "step", "player", "agent", "move", "duration", "episodes", "full_playouts"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteThroughput(records []ThroughputRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Goroutines),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.FormatFloat(record.EpisodesPerSecond(), 'f', 1, 64),
		})
	}
	header := []string{"agent", "goroutines", "duration", "episodes", "episodes_per_second"}
	return w.write("throughput.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	// Write each row
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
