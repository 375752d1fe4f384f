package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"odyssey/game"
)

func clearBoard(s *game.GameState) {
	for i := range s.Board.Cells {
		s.Board.Cells[i] = game.Piece{}
	}
}

func TestSenetScore(t *testing.T) {
	s, _ := game.NewState(game.Senet)

	t.Run("safe squares are preferred", func(t *testing.T) {
		score := senetScore(s, s, game.Move{Kind: game.StepMove, Player: 1, From: 22, To: 25, Roll: 3})
		require.Equal(t, 56.0, score)
	})

	t.Run("water is avoided", func(t *testing.T) {
		score := senetScore(s, s, game.Move{Kind: game.StepMove, Player: 1, From: 23, To: game.SenetWater, Roll: 3})
		require.Equal(t, -24.0, score)
	})
}

func TestGoScore(t *testing.T) {
	t.Run("suicide is heavily penalized", func(t *testing.T) {
		s, _ := game.NewState(game.Go)
		s.Board.Set(1, game.Piece{Owner: 2, Kind: game.Stone})
		s.Board.Set(9, game.Piece{Owner: 2, Kind: game.Stone})

		score := goScore(s, s, game.Move{Kind: game.PlaceMove, Player: 1, From: game.NoCell, To: 0})
		require.Equal(t, suicideScore, score)
	})

	t.Run("centre ranks first on an empty board", func(t *testing.T) {
		s, _ := game.NewState(game.Go)
		ranked := NewEvaluator(WithSeed(1)).Rank(s)
		require.Equal(t, 40, ranked[0].Move.To)
		require.Equal(t, game.PassMove, ranked[len(ranked)-1].Move.Kind, "Passing early should rank last")
	})
}

func TestMorrisScore(t *testing.T) {
	t.Run("closing a mill beats blocking one", func(t *testing.T) {
		s, _ := game.NewState(game.NineMensMorris)
		s.Board.Set(0, game.Piece{Owner: 1, Kind: game.Man})
		s.Board.Set(1, game.Piece{Owner: 1, Kind: game.Man})
		s.Board.Set(3, game.Piece{Owner: 2, Kind: game.Man})
		s.Board.Set(4, game.Piece{Owner: 2, Kind: game.Man})
		s.InHand = []int{7, 7}

		ranked := NewEvaluator(WithSeed(1)).Rank(s)
		require.Equal(t, 2, ranked[0].Move.To)
		require.Equal(t, 5, ranked[1].Move.To)
	})
}

func TestChaturangaScore(t *testing.T) {
	t.Run("taking the Raja outranks everything", func(t *testing.T) {
		s, _ := game.NewState(game.Chaturanga)
		clearBoard(s)
		s.Board.Set(0, game.Piece{Owner: 1, Kind: game.Ratha})
		s.Board.Set(31, game.Piece{Owner: 1, Kind: game.Raja})
		s.Board.Set(56, game.Piece{Owner: 2, Kind: game.Raja})

		ranked := NewEvaluator(WithSeed(1)).Rank(s)
		require.Equal(t, 56, ranked[0].Move.To)
		require.GreaterOrEqual(t, ranked[0].Score, winScore)
	})

	t.Run("threatening the Raja beats a quiet move", func(t *testing.T) {
		s, _ := game.NewState(game.Chaturanga)
		clearBoard(s)
		s.Board.Set(0, game.Piece{Owner: 1, Kind: game.Ratha})
		s.Board.Set(7, game.Piece{Owner: 1, Kind: game.Raja})
		s.Board.Set(60, game.Piece{Owner: 2, Kind: game.Raja})

		score := func(to int) float64 {
			move := game.Move{Kind: game.StepMove, Player: 1, From: 0, To: to}
			after, _, err := game.ApplyMove(s, move)
			require.NoError(t, err)
			return chaturangaScore(s, after, move)
		}
		require.Greater(t, score(4), score(1))
	})

	t.Run("closing in on the Raja scores", func(t *testing.T) {
		s, _ := game.NewState(game.Chaturanga)
		clearBoard(s)
		s.Board.Set(0, game.Piece{Owner: 1, Kind: game.Raja})
		s.Board.Set(63, game.Piece{Owner: 2, Kind: game.Raja})

		move := game.Move{Kind: game.StepMove, Player: 1, From: 0, To: 9}
		after, _, err := game.ApplyMove(s, move)
		require.NoError(t, err)
		require.Equal(t, 2.0, chaturangaScore(s, after, move))
	})
}

func TestMancalaScore(t *testing.T) {
	s, _ := game.NewState(game.Mancala)
	move := game.Move{Kind: game.StepMove, Player: 1, From: 2, To: game.MancalaStore(1)}
	after, _, err := game.ApplyMove(s, move)
	require.NoError(t, err)

	require.Equal(t, 105.0, mancalaScore(s, after, after.History[0]))
}
