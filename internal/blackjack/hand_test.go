package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// hand builds cards from ranks, cycling suits.
func hand(ranks ...string) []domain.Card {
	cards := make([]domain.Card, len(ranks))
	for i, r := range ranks {
		cards[i] = domain.Card{Suit: domain.Suits[i%len(domain.Suits)], Rank: r}
	}
	return cards
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		cards []domain.Card
		want  int
	}{
		{"empty", nil, 0},
		{"number cards", hand("2", "9"), 11},
		{"face cards count ten", hand("J", "Q", "K"), 30},
		{"ten", hand("10", "5"), 15},
		{"natural", hand("A", "K"), 21},
		{"soft seventeen", hand("A", "6"), 17},
		{"ace softens", hand("A", "9", "5"), 15},
		{"two aces and nine", hand("A", "A", "9"), 21},
		{"three aces and nine", hand("A", "A", "A", "9"), 12},
		{"four aces", hand("A", "A", "A", "A"), 14},
		{"hard bust", hand("K", "Q", "5"), 25},
		{"bust after softening every ace", hand("A", "K", "Q", "5"), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.cards))
			assert.Equal(t, tt.want, Score(tt.cards), "scoring must be idempotent")
		})
	}
}

func TestScore_SkipsHiddenCards(t *testing.T) {
	cards := hand("10", "A")
	cards[1].Hidden = true
	assert.Equal(t, 10, Score(cards))
}

func TestIsNaturalAndBust(t *testing.T) {
	assert.True(t, IsNatural(hand("A", "Q")))
	assert.False(t, IsNatural(hand("7", "7", "7")), "three-card 21 is not a natural")
	assert.True(t, IsBust(hand("K", "Q", "2")))
	assert.False(t, IsBust(hand("A", "A", "9")))
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	assert.Len(t, deck, DeckSize)

	seen := make(map[domain.Card]bool, DeckSize)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
}

func TestShuffledDeck(t *testing.T) {
	shuffled := ShuffledDeck(func(n int) int { return 0 })
	assert.Len(t, shuffled, DeckSize)
	assert.ElementsMatch(t, NewDeck(), shuffled)
	assert.NotEqual(t, NewDeck(), shuffled)
}

func BenchmarkScore(b *testing.B) {
	cards := hand("A", "A", "A", "9", "5")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Score(cards)
	}
}
