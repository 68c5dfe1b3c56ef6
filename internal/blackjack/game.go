package blackjack

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

var naturalMultiplier = decimal.RequireFromString(NaturalMultiplier)

// newGame deals player, dealer, player, dealer and resolves naturals.
func newGame(deck []domain.Card, bet int64) (*domain.GameSession, error) {
	g := &domain.GameSession{
		Deck:   deck,
		Bet:    bet,
		Status: domain.GameStatusPlaying,
	}
	for i := 0; i < InitialHandSize; i++ {
		c, err := draw(g)
		if err != nil {
			return nil, err
		}
		g.Player = append(g.Player, c)
		if c, err = draw(g); err != nil {
			return nil, err
		}
		g.Dealer = append(g.Dealer, c)
	}

	playerNatural, dealerNatural := IsNatural(g.Player), IsNatural(g.Dealer)
	switch {
	case playerNatural && dealerNatural:
		finish(g, domain.OutcomePush)
	case playerNatural:
		finish(g, domain.OutcomeBlackjack)
	case dealerNatural:
		finish(g, domain.OutcomeDealerNatural)
	}
	return g, nil
}

// hit draws one card for the player. 21 does not end the turn.
func hit(g *domain.GameSession) error {
	if g.Status != domain.GameStatusPlaying {
		return domain.ErrInvalidState
	}
	c, err := draw(g)
	if err != nil {
		return err
	}
	g.Player = append(g.Player, c)
	if IsBust(g.Player) {
		finish(g, domain.OutcomePlayerBust)
	}
	return nil
}

// stand plays out the dealer and settles.
func stand(g *domain.GameSession) error {
	if g.Status != domain.GameStatusPlaying {
		return domain.ErrInvalidState
	}
	if err := playDealer(g); err != nil {
		return err
	}
	settle(g)
	return nil
}

// double doubles the bet, draws exactly one card and resolves the hand.
// The caller debits the extra stake before calling.
func double(g *domain.GameSession) error {
	if g.Status != domain.GameStatusPlaying {
		return domain.ErrInvalidState
	}
	if len(g.Player) != InitialHandSize {
		return fmt.Errorf("%w: double is only allowed on the first two cards", domain.ErrInvalidAction)
	}

	g.Bet *= 2
	c, err := draw(g)
	if err != nil {
		return err
	}
	g.Player = append(g.Player, c)
	if IsBust(g.Player) {
		finish(g, domain.OutcomePlayerBust)
		return nil
	}
	if err := playDealer(g); err != nil {
		return err
	}
	settle(g)
	return nil
}

// playDealer draws until the dealer reaches 17.
func playDealer(g *domain.GameSession) error {
	for Score(g.Dealer) < DealerStandScore {
		c, err := draw(g)
		if err != nil {
			return err
		}
		g.Dealer = append(g.Dealer, c)
	}
	return nil
}

func settle(g *domain.GameSession) {
	player, dealer := Score(g.Player), Score(g.Dealer)
	switch {
	case dealer > BlackjackScore:
		finish(g, domain.OutcomeDealerBust)
	case player > dealer:
		finish(g, domain.OutcomePlayerWin)
	case player == dealer:
		finish(g, domain.OutcomePush)
	default:
		finish(g, domain.OutcomeDealerWin)
	}
}

func finish(g *domain.GameSession, outcome domain.GameOutcome) {
	g.Status = domain.GameStatusFinished
	g.Outcome = outcome
	g.Payout = Payout(outcome, g.Bet)
}

// Payout is the amount credited back for an outcome, including the returned stake.
func Payout(outcome domain.GameOutcome, bet int64) int64 {
	switch outcome {
	case domain.OutcomeBlackjack:
		return decimal.NewFromInt(bet).Mul(naturalMultiplier).Floor().IntPart()
	case domain.OutcomePlayerWin, domain.OutcomeDealerBust:
		return bet * WinMultiplier
	case domain.OutcomePush:
		return bet * PushMultiplier
	default:
		return 0
	}
}

// View masks the dealer hole card while the hand is in play.
func View(g *domain.GameSession, balance int64) domain.GameView {
	dealer := make([]domain.Card, len(g.Dealer))
	copy(dealer, g.Dealer)
	if g.Status == domain.GameStatusPlaying && len(dealer) > 1 {
		dealer[1].Hidden = true
	}
	player := make([]domain.Card, len(g.Player))
	copy(player, g.Player)

	return domain.GameView{
		Player:      player,
		Dealer:      dealer,
		PlayerScore: Score(player),
		DealerScore: Score(dealer),
		Bet:         g.Bet,
		Status:      g.Status,
		Outcome:     g.Outcome,
		Payout:      g.Payout,
		Balance:     balance,
		Message:     message(g),
	}
}

func message(g *domain.GameSession) string {
	switch g.Outcome {
	case domain.OutcomeBlackjack:
		return fmt.Sprintf(MsgBlackjack, g.Payout)
	case domain.OutcomePush:
		return fmt.Sprintf(MsgPush, g.Payout)
	case domain.OutcomePlayerWin:
		return fmt.Sprintf(MsgPlayerWin, g.Payout)
	case domain.OutcomeDealerBust:
		return fmt.Sprintf(MsgDealerBust, g.Payout)
	case domain.OutcomeDealerWin:
		return fmt.Sprintf(MsgDealerWin, Score(g.Dealer))
	case domain.OutcomePlayerBust:
		return fmt.Sprintf(MsgPlayerBust, g.Bet)
	case domain.OutcomeDealerNatural:
		return MsgDealerNatural
	}
	if len(g.Player) == InitialHandSize {
		return MsgYourMove
	}
	return MsgHitOrStand
}
