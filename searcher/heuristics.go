package searcher

import "odyssey/game"

// Heuristic scores a legal move from the mover's point of view, given the
// states before and after it. The move carries the events it produced.
type Heuristic func(before, after *game.GameState, move game.Move) float64

const (
	winScore     = 10000.0
	suicideScore = -1000.0
)

var defaultHeuristics = map[game.Kind]Heuristic{
	game.Senet:          senetScore,
	game.Pachisi:        raceScore,
	game.Patolli:        raceScore,
	game.Mancala:        mancalaScore,
	game.Go:             goScore,
	game.Chaturanga:     chaturangaScore,
	game.Hnefatafl:      taflScore,
	game.NineMensMorris: morrisScore,
	game.Hanafuda:       hanafudaScore,
}

// outcome rewards moves that end the game.
func outcome(move game.Move) float64 {
	for _, e := range move.Events {
		switch {
		case e.Type == game.WinEvent && e.Player == move.Player:
			return winScore
		case e.Type == game.WinEvent:
			return -winScore
		}
	}
	return 0
}

func count(move game.Move, t game.EventType) int {
	n := 0
	for _, e := range move.Events {
		if e.Type == t {
			n += max(e.Count, 1)
		}
	}
	return n
}

func senetScore(before, after *game.GameState, m game.Move) float64 {
	to := m.To
	if m.Kind == game.BearOffMove {
		to = game.SenetSquares
	}
	score := float64(to-m.From) * 2
	switch {
	case game.IsSenetSafe(m.To):
		score += 50
	case m.To == game.SenetWater:
		score -= 30
	}
	if m.Kind == game.BearOffMove {
		score += 50
	}
	return score + 100*float64(len(m.Captures()))
}

func raceScore(before, after *game.GameState, m game.Move) float64 {
	score := float64(m.Roll) * 2
	switch m.Kind {
	case game.EnterMove:
		score += 50
	case game.BearOffMove:
		score += 200
	}
	if m.To >= 0 && game.IsSafeCell(before.Kind, m.To) {
		score += 30
	}
	return score + 150*float64(len(m.Captures()))
}

func mancalaScore(before, after *game.GameState, m game.Move) float64 {
	store := game.MancalaStore(m.Player)
	score := 5 * float64(after.Board.At(store).Count-before.Board.At(store).Count)
	if count(m, game.ExtraTurnEvent) > 0 {
		score += 100
	}
	score += 20 * float64(count(m, game.CaptureEvent))

	opponent := before.Opponent(m.Player)
	given := 0
	for _, pit := range game.MancalaPitsOf(opponent) {
		given += after.Board.At(pit).Count - before.Board.At(pit).Count
	}
	if given > 3 {
		score -= 10 * float64(given-3)
	}
	return score
}

func goScore(before, after *game.GameState, m game.Move) float64 {
	if m.Kind == game.PassMove {
		if before.Passes > 0 && game.GoWinner(before.Board) == m.Player {
			return winScore / 2
		}
		return -50
	}
	if game.IsSuicide(before.Board, m.To, m.Player) {
		return suicideScore
	}

	t := before.Board.Topology()
	c := t.Coords[m.To]
	centre := t.Rows / 2
	score := 20 - float64(abs(c.Row-centre)+abs(c.Col-centre))
	score += 50 * float64(len(m.Captures()))
	for _, n := range t.Orthogonal[m.To] {
		if before.Board.At(n).BelongsTo(m.Player) {
			score += 30
		}
	}
	_, liberties := game.Group(after.Board, m.To)
	score += 5 * float64(liberties)
	if liberties == 1 {
		score -= 40
	}
	return score
}

var pieceValues = map[game.PieceKind]float64{
	game.Padati: 1,
	game.Mantri: 2,
	game.Gaja:   3,
	game.Ashva:  3,
	game.Ratha:  5,
	game.Raja:   100,
}

func chaturangaScore(before, after *game.GameState, m game.Move) float64 {
	score := 0.0
	if captured := before.Board.At(m.To); !captured.IsEmpty() {
		score += 10 * pieceValues[captured.Kind]
	}
	if count(m, game.PromotionEvent) > 0 {
		score += 15
	}
	if after.IsOver() {
		return score
	}
	if attacked(after, m.To) {
		score -= 8 * pieceValues[after.Board.At(m.To).Kind]
	}
	// Pressure on the enemy Raja keeps games from wandering.
	raja := rajaCell(after.Board, before.Opponent(m.Player))
	if raja == game.NoCell {
		return score
	}
	if threatens(after, m.Player, raja) {
		score += 25
	}
	t := after.Board.Topology()
	score += 2 * float64(chebyshev(t, m.From, raja)-chebyshev(t, m.To, raja))
	return score
}

func rajaCell(b game.Board, p game.Player) int {
	for _, cell := range b.CellsOf(p) {
		if b.At(cell).Kind == game.Raja {
			return cell
		}
	}
	return game.NoCell
}

// threatens reports whether mover could capture on cell if it moved again.
func threatens(s *game.GameState, mover game.Player, cell int) bool {
	again := s.Copy()
	again.CurrentPlayer = mover
	return attacked(again, cell)
}

func chebyshev(t *game.Topology, a, b int) int {
	ca, cb := t.Coords[a], t.Coords[b]
	return max(abs(ca.Row-cb.Row), abs(ca.Col-cb.Col))
}

// attacked reports whether the side to move can capture on cell.
func attacked(s *game.GameState, cell int) bool {
	for _, reply := range game.LegalMoves(s) {
		if reply.To == cell {
			return true
		}
	}
	return false
}

func taflScore(before, after *game.GameState, m game.Move) float64 {
	score := 40 * float64(len(m.Captures()))
	king := kingCell(after.Board)
	if king == game.NoCell {
		return score
	}
	if m.Player == 1 {
		score += 25 * float64(besiegers(after.Board, king))
		score -= 30 * float64(openLines(after.Board, king))
		return score
	}
	score += 60 * float64(openLines(after.Board, king))
	if before.Board.At(m.From).Kind == game.King {
		t := after.Board.Topology()
		score += 10 * float64(edgeDistance(t, m.From)-edgeDistance(t, m.To))
	}
	return score
}

func kingCell(b game.Board) int {
	for cell, p := range b.Cells {
		if p.Kind == game.King {
			return cell
		}
	}
	return game.NoCell
}

func besiegers(b game.Board, king int) int {
	n := 0
	for _, cell := range b.Topology().Orthogonal[king] {
		if b.At(cell).BelongsTo(1) {
			n++
		}
	}
	return n
}

// openLines counts the directions in which the king sees the edge.
func openLines(b game.Board, king int) int {
	t := b.Topology()
	open := 0
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		c := t.Coords[king]
		blocked := false
		for !blocked {
			c = game.Coord{Row: c.Row + d[0], Col: c.Col + d[1]}
			cell := t.Index(c.Row, c.Col)
			if cell == game.NoCell {
				break
			}
			blocked = !b.IsEmpty(cell)
		}
		if !blocked {
			open++
		}
	}
	return open
}

func edgeDistance(t *game.Topology, cell int) int {
	c := t.Coords[cell]
	return min(c.Row, c.Col, t.Rows-1-c.Row, t.Cols-1-c.Col)
}

func morrisScore(before, after *game.GameState, m game.Move) float64 {
	opponent := before.Opponent(m.Player)
	if m.Kind == game.RemoveMove {
		score := 30.0
		for _, mill := range game.MillsThrough(m.To) {
			if owned(before.Board, mill, opponent) == 2 && owned(before.Board, mill, game.NoPlayer) == 1 {
				score += 40
			}
		}
		return score
	}

	score := 100 * float64(count(m, game.MillEvent))
	for _, mill := range game.MillsThrough(m.To) {
		switch {
		case owned(before.Board, mill, opponent) == 2:
			score += 80
		case owned(after.Board, mill, m.Player) == 2 && owned(after.Board, mill, game.NoPlayer) == 1:
			score += 20
		}
	}
	for _, n := range after.Board.Topology().Neighbors[m.To] {
		if after.Board.IsEmpty(n) {
			score += 2
		}
	}
	return score
}

// owned counts the points of a mill held by player, or empty for NoPlayer.
func owned(b game.Board, mill [3]int, player game.Player) int {
	n := 0
	for _, cell := range mill {
		p := b.At(cell)
		if (player == game.NoPlayer && p.IsEmpty()) || p.BelongsTo(player) {
			n++
		}
	}
	return n
}

func hanafudaScore(before, after *game.GameState, m game.Move) float64 {
	gained := game.CardScore(after.Board, m.Player) - game.CardScore(before.Board, m.Player)
	score := 10 * float64(gained)
	if m.Kind == game.PlaceMove {
		score -= float64(game.Card(m.From).Points())
	}
	return score
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
