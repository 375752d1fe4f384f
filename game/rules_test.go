package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func hasMove(moves []Move, want Move) bool {
	_, ok := findMove(moves, want)
	return ok
}

func roll(t *testing.T, s *GameState, value int) *GameState {
	t.Helper()
	next, events, err := ApplyMove(s, Move{Kind: RollMove, Player: s.CurrentPlayer, From: NoCell, To: NoCell, Roll: value})
	require.NoError(t, err)
	require.Equal(t, RollEvent, events[0].Type)
	return next
}

func clearBoard(s *GameState) {
	for i := range s.Board.Cells {
		s.Board.Cells[i] = Piece{}
	}
}

func TestSenet(t *testing.T) {
	t.Run("rolls are the only moves before a throw", func(t *testing.T) {
		s, _ := NewState(Senet)
		moves := LegalMoves(s)
		require.Len(t, moves, 5)
		for _, m := range moves {
			require.True(t, m.IsStochastic())
		}
	})

	t.Run("piece lands on an unguarded opponent and swaps", func(t *testing.T) {
		s, _ := NewState(Senet)
		s = roll(t, s, 3)

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 0, To: 3, Roll: 3})

		require.NoError(t, err)
		require.Equal(t, Player(1), next.Board.At(3).Owner)
		require.Equal(t, Player(2), next.Board.At(0).Owner, "The attacked piece should take the mover's square")
		require.Equal(t, []int{3}, Move{Events: events}.Captures())
		require.Equal(t, Player(2), next.CurrentPlayer, "A throw of 3 should pass the turn")
		require.Equal(t, RollPhase, next.Phase)
	})

	t.Run("own piece on the target blocks", func(t *testing.T) {
		s, _ := NewState(Senet)
		s = roll(t, s, 2)

		_, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 0, To: 2, Roll: 2})

		var illegalMove *IllegalMoveError
		require.ErrorAs(t, err, &illegalMove)
	})

	t.Run("guarded and safe pieces cannot be attacked", func(t *testing.T) {
		s, _ := NewState(Senet)
		clearBoard(s)
		s.Board.Set(10, Piece{Owner: 1, Kind: Man})
		s.Board.Set(12, Piece{Owner: 2, Kind: Man})
		s.Board.Set(13, Piece{Owner: 2, Kind: Man})
		s.Board.Set(22, Piece{Owner: 1, Kind: Man})
		s.Board.Set(25, Piece{Owner: 2, Kind: Man})
		s = roll(t, s, 3)

		moves := LegalMoves(s)

		require.False(t, hasMove(moves, Move{Kind: StepMove, Player: 1, From: 10, To: 13, Roll: 3}))
		require.False(t, hasMove(moves, Move{Kind: StepMove, Player: 1, From: 22, To: 25, Roll: 3}))
	})

	t.Run("water sends the piece back to rebirth", func(t *testing.T) {
		s, _ := NewState(Senet)
		clearBoard(s)
		s.Board.Set(24, Piece{Owner: 1, Kind: Man})
		s.Board.Set(SenetRebirth, Piece{Owner: 2, Kind: Man})
		s = roll(t, s, 2)

		next, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 24, To: SenetWater, Roll: 2})

		require.NoError(t, err)
		require.True(t, next.Board.IsEmpty(SenetWater))
		require.Equal(t, Player(1), next.Board.At(SenetRebirth-1).Owner, "The first free square before rebirth should take the piece")
	})

	t.Run("bearing off the last piece wins", func(t *testing.T) {
		s, _ := NewState(Senet)
		clearBoard(s)
		s.Board.Set(29, Piece{Owner: 1, Kind: Man, ID: 4})
		s.Board.Set(5, Piece{Owner: 2, Kind: Man})
		for id := 0; id < 4; id++ {
			s.Reserve = append(s.Reserve, Piece{Owner: 1, Kind: Man, ID: id, Finished: true})
		}
		s = roll(t, s, 1)

		next, events, err := ApplyMove(s, Move{Kind: BearOffMove, Player: 1, From: 29, To: OffBoard, Roll: 1})

		require.NoError(t, err)
		require.True(t, next.IsOver())
		require.Equal(t, Player(1), next.Winner)
		require.Equal(t, WinEvent, events[len(events)-1].Type)
	})
}

func TestPachisi(t *testing.T) {
	t.Run("a six enters a home piece on the seat's entry square", func(t *testing.T) {
		for _, player := range []Player{1, 2, 3, 4} {
			s, _ := NewState(Pachisi)
			s.CurrentPlayer = player
			s = roll(t, s, 6)

			moves := LegalMoves(s)

			require.Equal(t, []Move{{Kind: EnterMove, Player: player, From: NoCell, To: player.Seat() * 13, Roll: 6}}, moves)
			next, _, err := ApplyMove(s, moves[0])
			require.NoError(t, err)
			require.Equal(t, player, next.Board.At(player.Seat()*13).Owner)
			require.Equal(t, player, next.CurrentPlayer, "A six should earn another throw")
		}
	})

	t.Run("a three moves nothing out of home", func(t *testing.T) {
		s, _ := NewState(Pachisi)
		s = roll(t, s, 3)

		require.Empty(t, LegalMoves(s))
		next, events, err := Forfeit(s)
		require.NoError(t, err)
		require.Equal(t, ForfeitEvent, events[0].Type)
		require.Equal(t, Player(2), next.CurrentPlayer, "The turn should be forfeited")
	})

	t.Run("landing on an unsafe opponent sends it home", func(t *testing.T) {
		s, _ := NewState(Pachisi)
		s.Board.Set(2, s.takeReserve(s.reserveOf(1, isHome)[0]))
		s.Board.Set(5, s.takeReserve(s.reserveOf(2, isHome)[0]))
		s.Board.Cells[2].Home, s.Board.Cells[5].Home = false, false
		home := len(s.reserveOf(2, isHome))
		s = roll(t, s, 3)

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 2, To: 5, Roll: 3})

		require.NoError(t, err)
		require.Equal(t, CaptureEvent, events[0].Type)
		require.Equal(t, home+1, len(next.reserveOf(2, isHome)), "The captured piece should be back home")
	})

	t.Run("opponents on safe squares block", func(t *testing.T) {
		s, _ := NewState(Pachisi)
		s.Board.Set(5, Piece{Owner: 1, Kind: Man})
		s.Board.Set(8, Piece{Owner: 2, Kind: Man, Safe: true})
		s = roll(t, s, 3)

		require.False(t, hasMove(LegalMoves(s), Move{Kind: StepMove, Player: 1, From: 5, To: 8, Roll: 3}))
	})

	t.Run("an exact throw bears a piece off", func(t *testing.T) {
		s, _ := NewState(Pachisi)
		s.CurrentPlayer = 2
		s.Board.Set(11, Piece{Owner: 2, Kind: Man})
		s = roll(t, s, 2)

		require.True(t, hasMove(LegalMoves(s), Move{Kind: BearOffMove, Player: 2, From: 11, To: OffBoard, Roll: 2}))
	})
}

func TestPatolli(t *testing.T) {
	t.Run("zero beans move nothing", func(t *testing.T) {
		s, _ := NewState(Patolli)
		s = roll(t, s, 0)
		require.Empty(t, LegalMoves(s))
	})

	t.Run("a one enters a piece", func(t *testing.T) {
		s, _ := NewState(Patolli)
		s.CurrentPlayer = 2
		s = roll(t, s, 1)
		require.True(t, hasMove(LegalMoves(s), Move{Kind: EnterMove, Player: 2, From: NoCell, To: 26, Roll: 1}))
	})
}

func TestGo(t *testing.T) {
	t.Run("suicide is never legal", func(t *testing.T) {
		s, _ := NewState(Go)
		s.Board.Set(1, Piece{Owner: 2, Kind: Stone})
		s.Board.Set(9, Piece{Owner: 2, Kind: Stone})

		require.True(t, IsSuicide(s.Board, 0, 1))
		require.False(t, hasMove(LegalMoves(s), Move{Kind: PlaceMove, Player: 1, From: NoCell, To: 0}))
	})

	t.Run("filling the last liberty is legal when it captures", func(t *testing.T) {
		s, _ := NewState(Go)
		s.Board.Set(1, Piece{Owner: 2, Kind: Stone})
		s.Board.Set(9, Piece{Owner: 2, Kind: Stone})
		s.Board.Set(2, Piece{Owner: 1, Kind: Stone})
		s.Board.Set(10, Piece{Owner: 1, Kind: Stone})
		s.Board.Set(18, Piece{Owner: 1, Kind: Stone})

		next, events, err := ApplyMove(s, Move{Kind: PlaceMove, Player: 1, From: NoCell, To: 0})

		require.NoError(t, err)
		require.Len(t, events, 2)
		require.True(t, next.Board.IsEmpty(1))
		require.True(t, next.Board.IsEmpty(9))
		require.Equal(t, 2, next.Prisoners[0])
	})

	t.Run("immediate recapture of a ko is refused", func(t *testing.T) {
		s, _ := NewState(Go)
		// The white stone on 10 has one liberty left, at 11, where a black
		// stone would itself be down to the liberty on 10.
		for _, c := range []int{1, 9, 19} {
			s.Board.Set(c, Piece{Owner: 1, Kind: Stone})
		}
		for _, c := range []int{2, 12, 20, 10} {
			s.Board.Set(c, Piece{Owner: 2, Kind: Stone})
		}

		next, _, err := ApplyMove(s, Move{Kind: PlaceMove, Player: 1, From: NoCell, To: 11})
		require.NoError(t, err)
		require.True(t, next.Board.IsEmpty(10), "Black should take the white stone")

		require.False(t, hasMove(LegalMoves(next), Move{Kind: PlaceMove, Player: 2, From: NoCell, To: 10}),
			"White may not retake at once")
	})

	t.Run("two passes end the game with komi", func(t *testing.T) {
		s, _ := NewState(Go)
		s.Board.Set(40, Piece{Owner: 1, Kind: Stone})
		s, _, _ = ApplyMove(s, Move{Kind: PassMove, Player: 1, From: NoCell, To: NoCell})
		s, events, err := ApplyMove(s, Move{Kind: PassMove, Player: 2, From: NoCell, To: NoCell})

		require.NoError(t, err)
		require.True(t, s.IsOver())
		require.Equal(t, Player(1), s.Winner, "Black owns the whole board")
		require.Equal(t, WinEvent, events[len(events)-1].Type)
		require.Equal(t, 81, AreaScore(s.Board)[1])
	})
}

func TestMancala(t *testing.T) {
	t.Run("sowing fills the next pits in ring order", func(t *testing.T) {
		s, _ := NewState(Mancala)

		next, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 0, To: 4})

		require.NoError(t, err)
		require.Equal(t, 0, next.Board.At(0).Count)
		for pit := 1; pit <= 4; pit++ {
			require.Equal(t, 5, next.Board.At(pit).Count)
		}
		require.Equal(t, Player(1), next.Board.At(4).Owner, "The landing pit belongs to the sower")
		require.Equal(t, Player(2), next.CurrentPlayer)
	})

	t.Run("last seed in the store earns another turn", func(t *testing.T) {
		s, _ := NewState(Mancala)

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 2, To: MancalaStore(1)})

		require.NoError(t, err)
		require.Equal(t, 1, next.Board.At(MancalaStore(1)).Count)
		require.Equal(t, Player(1), next.CurrentPlayer)
		require.Equal(t, ExtraTurnEvent, events[0].Type)
	})

	t.Run("sowing skips the opponent's store", func(t *testing.T) {
		s, _ := NewState(Mancala)
		s.Board.Cells[5].Count = 10

		next, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 5, To: 2})

		require.NoError(t, err)
		require.Equal(t, 0, next.Board.At(MancalaStore(2)).Count)
		require.Equal(t, 1, next.Board.At(MancalaStore(1)).Count)
	})

	t.Run("last seed in an own empty pit takes the opposite pit", func(t *testing.T) {
		s, _ := NewState(Mancala)
		s.Board.Cells[0].Count = 1
		s.Board.Cells[1].Count = 0

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 0, To: 1})

		require.NoError(t, err)
		require.Equal(t, captureEvent(1, opposite(1), 4), events[0])
		require.Equal(t, 5, next.Board.At(MancalaStore(1)).Count)
		require.Equal(t, 0, next.Board.At(opposite(1)).Count)
	})

	t.Run("an empty side ends the game", func(t *testing.T) {
		s, _ := NewState(Mancala)
		for _, pit := range MancalaPitsOf(1) {
			s.Board.Cells[pit].Count = 0
		}
		s.Board.Cells[5].Count = 1

		next, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 5, To: MancalaStore(1)})

		require.NoError(t, err)
		require.True(t, next.IsOver())
		require.Equal(t, Player(2), next.Winner)
		require.Equal(t, 24, next.Board.At(MancalaStore(2)).Count)
	})
}

func TestMorris(t *testing.T) {
	place := func(t *testing.T, s *GameState, player Player, cell int) (*GameState, []Event) {
		t.Helper()
		next, events, err := ApplyMove(s, Move{Kind: PlaceMove, Player: player, From: NoCell, To: cell})
		require.NoError(t, err)
		return next, events
	}

	t.Run("a mill requires removing exactly one piece", func(t *testing.T) {
		s, _ := NewState(NineMensMorris)
		s, _ = place(t, s, 1, 0)
		s, _ = place(t, s, 2, 3)
		s, _ = place(t, s, 1, 1)
		s, _ = place(t, s, 2, 4)
		s, events := place(t, s, 1, 2)

		require.Equal(t, []Event{{Type: MillEvent, Player: 1, Cell: 2, Count: 1}}, events)
		require.Equal(t, RemovingPhase, s.Phase)
		require.Equal(t, Player(1), s.CurrentPlayer)
		require.Len(t, LegalMoves(s), 2)

		next, _, err := ApplyMove(s, Move{Kind: RemoveMove, Player: 1, From: NoCell, To: 3})
		require.NoError(t, err)
		require.True(t, next.Board.IsEmpty(3))
		require.Equal(t, Player(2), next.CurrentPlayer)
		require.Equal(t, PlacingPhase, next.Phase)
	})

	t.Run("pieces in a mill are protected while others remain", func(t *testing.T) {
		s, _ := NewState(NineMensMorris)
		for _, c := range []int{0, 1, 2, 10} {
			s.Board.Set(c, Piece{Owner: 2, Kind: Man})
		}
		s.Phase = RemovingPhase
		require.Equal(t, []Move{{Kind: RemoveMove, Player: 1, From: NoCell, To: 10}}, LegalMoves(s))
	})

	t.Run("three men fly", func(t *testing.T) {
		s, _ := NewState(NineMensMorris)
		s.InHand = []int{0, 0}
		for _, c := range []int{0, 4, 8} {
			s.Board.Set(c, Piece{Owner: 1, Kind: Man})
		}
		for _, c := range []int{21, 22, 14, 20} {
			s.Board.Set(c, Piece{Owner: 2, Kind: Man})
		}
		s.Phase = morrisPhase(s, 1)

		require.Equal(t, FlyingPhase, s.Phase)
		require.True(t, hasMove(LegalMoves(s), Move{Kind: StepMove, Player: 1, From: 0, To: 23}))
	})
}

func TestChaturanga(t *testing.T) {
	t.Run("opening moves", func(t *testing.T) {
		s, _ := NewState(Chaturanga)
		require.Len(t, LegalMoves(s), 16, "8 Padati steps, 4 Ashva jumps and 4 Gaja leaps")
	})

	t.Run("taking the Raja wins", func(t *testing.T) {
		s, _ := NewState(Chaturanga)
		clearBoard(s)
		s.Board.Set(0, Piece{Owner: 1, Kind: Ratha})
		s.Board.Set(56, Piece{Owner: 2, Kind: Raja})

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 0, To: 56})

		require.NoError(t, err)
		require.True(t, next.IsOver())
		require.Equal(t, Player(1), next.Winner)
		require.Equal(t, CaptureEvent, events[0].Type)
	})

	t.Run("a Padati on the last rank becomes a Mantri", func(t *testing.T) {
		s, _ := NewState(Chaturanga)
		clearBoard(s)
		s.Board.Set(50, Piece{Owner: 1, Kind: Padati})
		s.Board.Set(4, Piece{Owner: 1, Kind: Raja})
		s.Board.Set(63, Piece{Owner: 2, Kind: Raja})

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 50, To: 58})

		require.NoError(t, err)
		require.Equal(t, Mantri, next.Board.At(58).Kind)
		require.Equal(t, PromotionEvent, events[0].Type)
	})
}

func TestHnefatafl(t *testing.T) {
	t.Run("sandwiched pieces are captured", func(t *testing.T) {
		s, _ := NewState(Hnefatafl)
		clearBoard(s)
		s.Board.Set(Throne, Piece{Owner: 2, Kind: King})
		s.Board.Set(36, Piece{Owner: 2, Kind: Defender})
		s.Board.Set(35, Piece{Owner: 1, Kind: Attacker})
		s.Board.Set(26, Piece{Owner: 1, Kind: Attacker})

		next, events, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: 26, To: 37})

		require.NoError(t, err)
		require.Equal(t, []int{36}, Move{Events: events}.Captures())
		require.True(t, next.Board.IsEmpty(36))
	})

	t.Run("only the king may cross the throne", func(t *testing.T) {
		s, _ := NewState(Hnefatafl)
		clearBoard(s)
		s.Board.Set(Throne-2, Piece{Owner: 1, Kind: Attacker})
		s.Board.Set(0, Piece{Owner: 2, Kind: King})

		moves := LegalMoves(s)

		require.False(t, hasMove(moves, Move{Kind: StepMove, Player: 1, From: Throne - 2, To: Throne}))
		require.False(t, hasMove(moves, Move{Kind: StepMove, Player: 1, From: Throne - 2, To: Throne + 1}))
		require.True(t, hasMove(moves, Move{Kind: StepMove, Player: 1, From: Throne - 2, To: Throne - 1}))
	})

	t.Run("the king escapes to the edge", func(t *testing.T) {
		s, _ := NewState(Hnefatafl)
		clearBoard(s)
		s.CurrentPlayer = 2
		s.Board.Set(12, Piece{Owner: 2, Kind: King})
		s.Board.Set(100, Piece{Owner: 1, Kind: Attacker})

		next, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 2, From: 12, To: 11})

		require.NoError(t, err)
		require.Equal(t, Player(2), next.Winner)
	})

	t.Run("the king surrounded on four sides is taken", func(t *testing.T) {
		s, _ := NewState(Hnefatafl)
		clearBoard(s)
		king := TaflSize*3 + 3
		s.Board.Set(king, Piece{Owner: 2, Kind: King})
		for _, c := range []int{king - 1, king + 1, king - TaflSize} {
			s.Board.Set(c, Piece{Owner: 1, Kind: Attacker})
		}
		s.Board.Set(king+2*TaflSize, Piece{Owner: 1, Kind: Attacker})

		next, _, err := ApplyMove(s, Move{Kind: StepMove, Player: 1, From: king + 2*TaflSize, To: king + TaflSize})

		require.NoError(t, err)
		require.True(t, KingSurrounded(next.Board))
		require.Equal(t, Player(1), next.Winner)
	})
}

func TestHanafuda(t *testing.T) {
	t.Run("the deal is fixed by the seed", func(t *testing.T) {
		a, _ := NewState(Hanafuda, WithSeed(7))
		b, _ := NewState(Hanafuda, WithSeed(7))
		require.Equal(t, a.Board, b.Board)

		require.Len(t, CardsWhere(a.Board, CardHand, 1), hanafudaHand)
		require.Len(t, CardsWhere(a.Board, CardHand, 2), hanafudaHand)
		require.Len(t, CardsWhere(a.Board, CardTable, NoPlayer), hanafudaTable)
		require.Len(t, CardsWhere(a.Board, CardDeck, NoPlayer), HanafudaCards-2*hanafudaHand-hanafudaTable)
	})

	t.Run("card points", func(t *testing.T) {
		total := 0
		for c := 0; c < HanafudaCards; c++ {
			total += Card(c).Points()
		}
		require.Equal(t, 264, total)
		require.Equal(t, Bright, Card(0).Type())
		require.Equal(t, Chaff, Card(47).Type())
	})

	t.Run("every hand card can be played", func(t *testing.T) {
		s, _ := NewState(Hanafuda, WithSeed(3))
		played := map[int]bool{}
		for _, m := range LegalMoves(s) {
			played[m.From] = true
			if m.Kind == StepMove {
				require.True(t, Card(m.From).Matches(Card(m.To)))
			}
		}
		require.Len(t, played, hanafudaHand)
	})

	t.Run("the game ends when the hands are empty", func(t *testing.T) {
		states := playRandom(t, Hanafuda, 5, 100)
		last := states[len(states)-1]
		require.True(t, last.IsOver())
		require.Len(t, last.History, 2*hanafudaHand)
		one, two := CardScore(last.Board, 1), CardScore(last.Board, 2)
		switch {
		case one > two:
			require.Equal(t, Player(1), last.Winner)
		case two > one:
			require.Equal(t, Player(2), last.Winner)
		default:
			require.Equal(t, NoPlayer, last.Winner)
		}
	})
}
