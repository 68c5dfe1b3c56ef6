package blackjack

import "github.com/tebnews/TEBNews_Go/internal/domain"

// Score returns the blackjack value of the visible cards in hand. Aces count 11
// and drop to 1 one at a time while the total is over 21.
func Score(hand []domain.Card) int {
	score, aces := 0, 0
	for _, c := range hand {
		if c.Hidden {
			continue
		}
		score += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for score > BlackjackScore && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// IsNatural reports a two-card 21.
func IsNatural(hand []domain.Card) bool {
	return len(hand) == InitialHandSize && Score(hand) == BlackjackScore
}

// IsBust reports a score over 21.
func IsBust(hand []domain.Card) bool {
	return Score(hand) > BlackjackScore
}
