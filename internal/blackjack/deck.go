package blackjack

import (
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/utils"
)

// NewDeck returns an ordered 52-card deck.
func NewDeck() []domain.Card {
	deck := make([]domain.Card, 0, DeckSize)
	for _, suit := range domain.Suits {
		for _, rank := range domain.Ranks {
			deck = append(deck, domain.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// ShuffledDeck returns a fresh deck shuffled with rng.
func ShuffledDeck(rng func(int) int) []domain.Card {
	deck := NewDeck()
	utils.Shuffle(deck, rng)
	return deck
}

// draw takes the top card of the session deck.
func draw(g *domain.GameSession) (domain.Card, error) {
	if len(g.Deck) == 0 {
		return domain.Card{}, domain.ErrInvalidState
	}
	card := g.Deck[0]
	g.Deck = g.Deck[1:]
	return card, nil
}
