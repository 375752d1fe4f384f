package searcher

import "odyssey/game"

// Standing estimates how well player is doing, between -1 and 1, by tallying
// the resources of the kind (seeds banked, territory, material, progress)
// against the strongest opponent.
func Standing(state *game.GameState, player game.Player) float64 {
	if state.IsOver() {
		switch state.Winner {
		case player:
			return 1
		case game.NoPlayer:
			return 0
		default:
			return -1
		}
	}
	own := resources(state, player)
	best := 0.0
	for _, p := range state.PlayerIDs() {
		if p != player {
			best = max(best, resources(state, p))
		}
	}
	return normalize(own, best)
}

func resources(s *game.GameState, p game.Player) float64 {
	b := s.Board
	switch s.Kind {
	case game.Mancala:
		return float64(b.At(game.MancalaStore(p)).Count)
	case game.Go:
		return float64(game.AreaScore(b)[p])
	case game.Chaturanga:
		total := 0.0
		for _, cell := range b.CellsOf(p) {
			total += pieceValues[b.At(cell).Kind]
		}
		return total
	case game.Hnefatafl:
		total := 0.0
		for _, cell := range b.CellsOf(p) {
			if b.At(cell).Kind == game.King {
				total += 5
			} else {
				total++
			}
		}
		return total
	case game.NineMensMorris:
		return float64(len(b.CellsOf(p)) + s.InHand[p.Seat()])
	case game.Hanafuda:
		return float64(game.CardScore(b, p))
	default:
		finish := game.RaceTrackLength
		if s.Kind == game.Senet {
			finish = game.SenetSquares
		}
		total := 0.0
		for _, cell := range b.CellsOf(p) {
			total += float64(game.TrackProgress(s.Kind, p, cell))
		}
		for _, piece := range s.Reserve {
			if piece.Owner == p && piece.Finished {
				total += float64(finish)
			}
		}
		return total
	}
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
