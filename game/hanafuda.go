package game

import "golang.org/x/exp/rand"

const (
	hanafudaHand  = 8
	hanafudaTable = 8
)

// hanafuda plays two-player Koi-Koi without yaku: a hand card takes a table
// card of the same month or is laid on the table, then the top of the deck is
// turned over and matched the same way. The game ends when both hands are
// empty and the captured card points decide.
//
// Every card has a fixed cell; the occupant records where the card is. Deck
// cards carry their position in the draw pile as ID.
type hanafuda struct{}

func (hanafuda) Layout(b *Board) {
	for i := range b.Cells {
		b.Cells[i] = Piece{Kind: CardDeck, ID: i}
	}
}

// Setup deals from a deck shuffled by the state's seed, so a saved game can
// always be replayed.
func (hanafuda) Setup(s *GameState) {
	r := rand.New(rand.NewSource(s.Seed))
	order := r.Perm(HanafudaCards)
	for pos, card := range order {
		switch {
		case pos < hanafudaHand:
			s.Board.Cells[card] = Piece{Owner: 1, Kind: CardHand}
		case pos < 2*hanafudaHand:
			s.Board.Cells[card] = Piece{Owner: 2, Kind: CardHand}
		case pos < 2*hanafudaHand+hanafudaTable:
			s.Board.Cells[card] = Piece{Kind: CardTable}
		default:
			s.Board.Cells[card] = Piece{Kind: CardDeck, ID: pos - 2*hanafudaHand - hanafudaTable}
		}
	}
}

// CardsWhere lists the cards whose occupant is of the given kind and owner.
func CardsWhere(b Board, kind PieceKind, owner Player) []int {
	var cards []int
	for i, p := range b.Cells {
		if p.Kind == kind && p.Owner == owner {
			cards = append(cards, i)
		}
	}
	return cards
}

func tableMatches(b Board, card int) []int {
	var matches []int
	for _, t := range CardsWhere(b, CardTable, NoPlayer) {
		if Card(t).Matches(Card(card)) {
			matches = append(matches, t)
		}
	}
	return matches
}

func (hanafuda) LegalMoves(s *GameState) []Move {
	var moves []Move
	for _, card := range CardsWhere(s.Board, CardHand, s.CurrentPlayer) {
		matches := tableMatches(s.Board, card)
		if len(matches) == 0 {
			moves = append(moves, newMove(PlaceMove, s.CurrentPlayer, card, card))
			continue
		}
		for _, t := range matches {
			moves = append(moves, newMove(StepMove, s.CurrentPlayer, card, t))
		}
	}
	return moves
}

func (hanafuda) Play(s *GameState, m Move) []Event {
	var events []Event
	player := m.Player
	take := func(card, match int) {
		s.Board.Cells[card] = Piece{Owner: player, Kind: CardCaptured}
		s.Board.Cells[match] = Piece{Owner: player, Kind: CardCaptured}
		events = append(events, captureEvent(player, match, 2))
	}

	if m.Kind == StepMove {
		take(m.From, m.To)
	} else {
		s.Board.Cells[m.From] = Piece{Kind: CardTable}
	}

	if drawn := topOfDeck(s.Board); drawn != NoCell {
		if matches := tableMatches(s.Board, drawn); len(matches) > 0 {
			take(drawn, matches[0])
		} else {
			s.Board.Cells[drawn] = Piece{Kind: CardTable}
		}
	}

	if len(CardsWhere(s.Board, CardHand, 1)) == 0 && len(CardsWhere(s.Board, CardHand, 2)) == 0 {
		return append(events, settle(s))
	}
	s.endTurn()
	return events
}

func topOfDeck(b Board) int {
	top := NoCell
	for i, p := range b.Cells {
		if p.Kind == CardDeck && (top == NoCell || p.ID < b.Cells[top].ID) {
			top = i
		}
	}
	return top
}

// CardScore sums the points of the cards a player captured.
func CardScore(b Board, p Player) int {
	score := 0
	for _, card := range CardsWhere(b, CardCaptured, p) {
		score += Card(card).Points()
	}
	return score
}

func settle(s *GameState) Event {
	one, two := CardScore(s.Board, 1), CardScore(s.Board, 2)
	switch {
	case one > two:
		return s.finish(1)
	case two > one:
		return s.finish(2)
	default:
		return s.finish(NoPlayer)
	}
}

// A player with an empty hand ends the game.
func (hanafuda) NoMoves(s *GameState) []Event {
	return []Event{settle(s)}
}
