package domain

// Suit is one of the four French suits.
type Suit string

const (
	SuitSpades   Suit = "♠"
	SuitHearts   Suit = "♥"
	SuitDiamonds Suit = "♦"
	SuitClubs    Suit = "♣"
)

// Suits in deck construction order.
var Suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Ranks in deck construction order.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// RankAce is the only rank that softens.
const RankAce = "A"

// Card is a playing card. Hidden cards are masked in player views and skipped when scoring.
type Card struct {
	Suit   Suit   `json:"suit"`
	Rank   string `json:"rank"`
	Hidden bool   `json:"hidden,omitempty"`
}

// Value returns the pre-softening value: face value, 10 for J/Q/K, 11 for an ace.
func (c Card) Value() int {
	switch c.Rank {
	case "J", "Q", "K":
		return 10
	case RankAce:
		return 11
	}
	v := 0
	for _, ch := range c.Rank {
		v = v*10 + int(ch-'0')
	}
	return v
}

// IsAce reports whether the card is an ace.
func (c Card) IsAce() bool {
	return c.Rank == RankAce
}
