package leaderboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"odyssey/engine"
	"odyssey/utils"
)

const (
	K             = 32
	Floor         = 800
	DefaultRating = 1200
)

var ErrNotEnoughPlayers = errors.New("a rated game needs two distinct players")

// GameStats aggregates the finished games of one kind.
type GameStats struct {
	Kind          string        `json:"kind"`
	TotalGames    int           `json:"totalGames"`
	Draws         int           `json:"draws"`
	TotalDuration time.Duration `json:"-"`
}

func (s GameStats) AverageDuration() time.Duration {
	if s.TotalGames == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalGames)
}

// Ledger keeps player ratings. Updates for a game lock its players one by one
// in id order, so concurrent results never overwrite each other.
type Ledger struct {
	mu       sync.Mutex // guards the maps, not the profiles
	profiles map[string]*Profile
	locks    map[string]*sync.Mutex
	games    map[string]*GameStats
	now      func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		profiles: make(map[string]*Profile),
		locks:    make(map[string]*sync.Mutex),
		games:    make(map[string]*GameStats),
		now:      time.Now,
	}
}

// Expected is the ELO win expectancy of rating against opponent.
func Expected(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// Delta is the rating change for an actual score of 1 (win), 0.5 (draw) or 0.
func Delta(rating, opponent, actual float64) int {
	return int(math.Round(K * (actual - Expected(rating, opponent))))
}

// Record rates a finished game and returns each player's rating change. In
// games with more than two players everyone is rated against the mean of the
// others.
func (l *Ledger) Record(summary engine.Summary) (map[string]int, error) {
	ids := utils.Distinct(summary.PlayerIDs)
	if len(ids) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if summary.WinnerID != "" && !utils.ContainsSorted(ids, summary.WinnerID) {
		return nil, fmt.Errorf("winner %q did not play", summary.WinnerID)
	}

	profiles := l.acquire(ids)
	defer l.release(ids)

	ratings := make(map[string]float64, len(ids))
	total := 0.0
	for _, id := range ids {
		ratings[id] = float64(profiles[id].Rating)
		total += ratings[id]
	}

	duration := time.Duration(summary.DurationMs) * time.Millisecond
	at := l.now()
	deltas := make(map[string]int, len(ids))
	for _, id := range ids {
		actual := 0.0
		switch summary.WinnerID {
		case id:
			actual = 1
		case "":
			actual = 0.5
		}
		opponent := (total - ratings[id]) / float64(len(ids)-1)
		p := profiles[id]
		before := p.Rating
		p.Rating = max(Floor, p.Rating+Delta(ratings[id], opponent, actual))
		p.play(actual == 1, duration, at)
		deltas[id] = p.Rating - before
	}

	l.tally(summary, duration)
	return deltas, nil
}

// Observe records a summary and logs what could not be rated. It fits
// engine.OnFinish.
func (l *Ledger) Observe(summary engine.Summary) {
	deltas, err := l.Record(summary)
	if err != nil {
		log.Debug().Err(err).Msgf("%s game not rated", summary.GameKind)
		return
	}
	log.Info().Msgf("rated %s game: %v", summary.GameKind, deltas)
}

// acquire locks the profiles of ids, creating missing ones. ids must be sorted.
func (l *Ledger) acquire(ids []string) map[string]*Profile {
	l.mu.Lock()
	locks := make([]*sync.Mutex, len(ids))
	profiles := make(map[string]*Profile, len(ids))
	for i, id := range ids {
		if _, ok := l.profiles[id]; !ok {
			l.profiles[id] = newProfile(id)
			l.locks[id] = &sync.Mutex{}
		}
		locks[i] = l.locks[id]
		profiles[id] = l.profiles[id]
	}
	l.mu.Unlock()

	for _, lock := range locks {
		lock.Lock()
	}
	return profiles
}

func (l *Ledger) release(ids []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(ids) - 1; i >= 0; i-- {
		l.locks[ids[i]].Unlock()
	}
}

func (l *Ledger) tally(summary engine.Summary, duration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats, ok := l.games[summary.GameKind]
	if !ok {
		stats = &GameStats{Kind: summary.GameKind}
		l.games[summary.GameKind] = stats
	}
	stats.TotalGames++
	stats.TotalDuration += duration
	if summary.WinnerID == "" {
		stats.Draws++
	}
}

// Profile returns a snapshot of a player's profile.
func (l *Ledger) Profile(id string) (Profile, bool) {
	lock, p := l.lookup(id)
	if p == nil {
		return Profile{}, false
	}
	lock.Lock()
	defer lock.Unlock()

	return p.copy(), true
}

func (l *Ledger) lookup(id string) (*sync.Mutex, *Profile) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.locks[id], l.profiles[id]
}

// Top ranks players by rating, then by experience, then by id.
func (l *Ledger) Top(n int) []Profile {
	l.mu.Lock()
	ids := make([]string, 0, len(l.profiles))
	for id := range l.profiles {
		ids = append(ids, id)
	}
	l.mu.Unlock()

	ranked := make([]Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := l.Profile(id); ok {
			ranked = append(ranked, p)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Experience != b.Experience {
			return a.Experience > b.Experience
		}
		return a.ID < b.ID
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Games returns the statistics of a game kind.
func (l *Ledger) Games(kind string) GameStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	if stats, ok := l.games[kind]; ok {
		return *stats
	}
	return GameStats{Kind: kind}
}
