package game

const HanafudaCards = 48

type CardType int

const (
	Chaff  CardType = iota // 1 point
	Ribbon                 // 5
	Animal                 // 10
	Bright                 // 20
)

var cardPoints = []int{1, 5, 10, 20}

// Card types by month, most valuable first. The deck holds 264 points.
var monthCards = [12][4]CardType{
	{Bright, Ribbon, Chaff, Chaff},  // January
	{Animal, Ribbon, Chaff, Chaff},  // February
	{Bright, Ribbon, Chaff, Chaff},  // March
	{Animal, Ribbon, Chaff, Chaff},  // April
	{Animal, Ribbon, Chaff, Chaff},  // May
	{Animal, Ribbon, Chaff, Chaff},  // June
	{Animal, Ribbon, Chaff, Chaff},  // July
	{Bright, Animal, Chaff, Chaff},  // August
	{Animal, Ribbon, Chaff, Chaff},  // September
	{Animal, Ribbon, Chaff, Chaff},  // October
	{Bright, Animal, Ribbon, Chaff}, // November
	{Bright, Chaff, Chaff, Chaff},   // December
}

// Card identifies one of the 48 Hanafuda cards; the card with id i lives in
// board cell i.
type Card int

func (c Card) Month() int {
	return int(c) / 4
}

func (c Card) Type() CardType {
	return monthCards[c.Month()][int(c)%4]
}

func (c Card) Points() int {
	return cardPoints[c.Type()]
}

// Matches reports whether two cards are of the same month.
func (c Card) Matches(other Card) bool {
	return c.Month() == other.Month()
}
