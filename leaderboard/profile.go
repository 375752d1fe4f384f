package leaderboard

import (
	"time"

	"odyssey/utils"
)

// Achievements, in the order they are checked.
const (
	FirstWin       = "first_win"
	WinStreak5     = "win_streak_5"
	WinStreak10    = "win_streak_10"
	GamesPlayed100 = "games_played_100"
	Level10        = "level_10"
	Level20        = "level_20"
)

type Profile struct {
	ID            string    `json:"id"`
	Rating        int       `json:"rating"`
	GamesPlayed   int       `json:"gamesPlayed"`
	GamesWon      int       `json:"gamesWon"`
	CurrentStreak int       `json:"currentStreak"`
	BestStreak    int       `json:"bestStreak"`
	Experience    int       `json:"experience"`
	Level         int       `json:"level"`
	Achievements  []string  `json:"achievements"`
	LastActive    time.Time `json:"lastActive"`
}

func newProfile(id string) *Profile {
	return &Profile{
		ID:           id,
		Rating:       DefaultRating,
		Level:        1,
		Achievements: []string{},
	}
}

func (p *Profile) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.GamesWon) / float64(p.GamesPlayed)
}

// play books one game. Quick games and win streaks earn extra experience.
func (p *Profile) play(won bool, duration time.Duration, at time.Time) {
	p.GamesPlayed++
	if won {
		p.GamesWon++
		p.CurrentStreak++
		p.BestStreak = max(p.BestStreak, p.CurrentStreak)
	} else {
		p.CurrentStreak = 0
	}

	gained := 25
	if won {
		gained = 100
	}
	gained += max(0, 30-int(duration.Minutes()))
	if p.CurrentStreak > 1 {
		gained += 10 * p.CurrentStreak
	}
	p.Experience += gained
	p.Level = p.Experience/1000 + 1
	p.LastActive = at
	p.unlock()
}

func (p *Profile) unlock() {
	earned := []struct {
		name string
		ok   bool
	}{
		{FirstWin, p.GamesWon >= 1},
		{WinStreak5, p.CurrentStreak >= 5},
		{WinStreak10, p.CurrentStreak >= 10},
		{GamesPlayed100, p.GamesPlayed >= 100},
		{Level10, p.Level >= 10},
		{Level20, p.Level >= 20},
	}
	for _, a := range earned {
		if a.ok && utils.FindIndex(p.Achievements, a.name) < 0 {
			p.Achievements = append(p.Achievements, a.name)
		}
	}
}

func (p *Profile) copy() Profile {
	c := *p
	c.Achievements = append([]string{}, p.Achievements...)
	return c
}
