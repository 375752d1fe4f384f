package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"odyssey/experiments/metrics"
	"odyssey/game"
	"odyssey/searcher/agent"
)

// remoteAgent asks an agent server (see agent.NewServer) for its moves.
type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent posting states to baseURL/findmove.
func NewRemoteAgent(baseURL string, timeout time.Duration) agent.Agent {
	return &remoteAgent{
		url:    strings.TrimSuffix(baseURL, "/") + "/findmove",
		client: &http.Client{Timeout: timeout},
	}
}

// Remote seats an agent served over HTTP.
func Remote(name, baseURL string) Controller {
	return Bot(name, NewRemoteAgent(baseURL, 30*time.Second))
}

func (a *remoteAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	blob, err := game.Serialize(state)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}
	body, err := json.Marshal(agent.FindMoveRequest{State: blob})
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, err
	}

	start := time.Now()
	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var answer agent.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode agent move: %w", err)
	}
	return answer.Move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}, nil
}
