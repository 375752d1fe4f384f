package game

// PieceKind is the optional sub-kind of a piece. Most games only use Man or Stone.
type PieceKind int

const (
	NoPiece PieceKind = iota
	Man
	Stone
	Seeds

	// Chaturanga
	Raja
	Mantri
	Gaja
	Ashva
	Ratha
	Padati

	// Hnefatafl
	Attacker
	Defender
	King

	// Hanafuda cards, by where the card currently is
	CardDeck
	CardHand
	CardTable
	CardCaptured
)

// Piece is the occupant of a cell. The zero Piece is an empty cell.
// Home, Safe and Finished are only meaningful for track games.
type Piece struct {
	Owner    Player    `json:"owner,omitempty"`
	Kind     PieceKind `json:"kind,omitempty"`
	ID       int       `json:"id,omitempty"`
	Count    int       `json:"count,omitempty"`
	Home     bool      `json:"home,omitempty"`
	Safe     bool      `json:"safe,omitempty"`
	Finished bool      `json:"finished,omitempty"`
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoPiece
}

func (p Piece) BelongsTo(player Player) bool {
	return !p.IsEmpty() && p.Owner == player
}

// Empty returns the empty occupant.
func Empty() Piece {
	return Piece{}
}
