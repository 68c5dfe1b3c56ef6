package blackjack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/repository"
	"github.com/tebnews/TEBNews_Go/internal/utils"
)

// Result is returned by every blackjack action.
// State is the new signed blob while the hand is in play; Clear is set once it is finished.
type Result struct {
	State string          `json:"-"`
	Clear bool            `json:"-"`
	View  domain.GameView `json:"game"`
}

// Service defines the blackjack turn operations
type Service interface {
	Deal(ctx context.Context, userID uuid.UUID, bet int64) (*Result, error)
	Hit(ctx context.Context, userID uuid.UUID, state string) (*Result, error)
	Stand(ctx context.Context, userID uuid.UUID, state string) (*Result, error)
	Double(ctx context.Context, userID uuid.UUID, state string) (*Result, error)
}

type service struct {
	wallet    repository.Wallet
	publisher event.Publisher
	codec     *StateCodec
	spent     SpentTokenStore
	deck      func() []domain.Card // Injectable for testing
}

// NewService creates a new blackjack service. stateTTL bounds how long an abandoned hand stays playable.
// A nil spent store keeps spent state ids in process, which only protects a single instance.
func NewService(wallet repository.Wallet, publisher event.Publisher, spent SpentTokenStore, stateSecret string, stateTTL time.Duration) Service {
	codec := NewStateCodec(stateSecret, stateTTL)
	if spent == nil {
		spent = newMemorySpentTokens(DefaultReplayCacheSize, codec.ttl)
	}
	return &service{
		wallet:    wallet,
		publisher: publisher,
		codec:     codec,
		spent:     spent,
		deck: func() []domain.Card {
			return ShuffledDeck(utils.RandomIntn)
		},
	}
}

// Deal debits the bet and deals a new hand. Naturals settle immediately.
func (s *service) Deal(ctx context.Context, userID uuid.UUID, bet int64) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgDealCalled, "user_id", userID, "bet", bet)

	if bet < MinBet || bet > MaxBet {
		return nil, fmt.Errorf("%w: bet must be between %d and %d", domain.ErrInvalidInput, MinBet, MaxBet)
	}

	g, err := newGame(s.deck(), bet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDraw, err)
	}

	var token string
	if g.Status == domain.GameStatusPlaying {
		if token, err = s.codec.Encode(userID, g); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToEncode, err)
		}
	}

	balance, err := s.settleMoney(ctx, userID, bet, g.Payout)
	if err != nil {
		return nil, err
	}

	return s.result(ctx, userID, g, token, balance), nil
}

// Hit draws a card for the player.
func (s *service) Hit(ctx context.Context, userID uuid.UUID, state string) (*Result, error) {
	return s.act(ctx, userID, state, "hit", func(g *domain.GameSession) (int64, error) {
		if err := hit(g); err != nil {
			return 0, err
		}
		return s.settleMoney(ctx, userID, 0, g.Payout)
	})
}

// Stand plays out the dealer and pays the result.
func (s *service) Stand(ctx context.Context, userID uuid.UUID, state string) (*Result, error) {
	return s.act(ctx, userID, state, "stand", func(g *domain.GameSession) (int64, error) {
		if err := stand(g); err != nil {
			return 0, err
		}
		return s.settleMoney(ctx, userID, 0, g.Payout)
	})
}

// Double debits the original bet again, draws one card and settles.
func (s *service) Double(ctx context.Context, userID uuid.UUID, state string) (*Result, error) {
	return s.act(ctx, userID, state, "double", func(g *domain.GameSession) (int64, error) {
		if g.Status != domain.GameStatusPlaying {
			return 0, domain.ErrInvalidState
		}
		if len(g.Player) != InitialHandSize {
			return 0, fmt.Errorf("%w: double is only allowed on the first two cards", domain.ErrInvalidAction)
		}
		extra := g.Bet
		if err := double(g); err != nil {
			return 0, err
		}
		return s.settleMoney(ctx, userID, extra, g.Payout)
	})
}

// act verifies and spends a state blob, applies step and re-signs or clears the state.
// A failed step releases the blob so the player can try another action.
func (s *service) act(ctx context.Context, userID uuid.UUID, state, action string, step func(*domain.GameSession) (int64, error)) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgActionCalled, "user_id", userID, "action", action)

	verified, err := s.codec.Decode(state, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTamperedState):
			log.Warn(LogMsgTamperedState, "user_id", userID, "action", action, "error", err)
		default:
			log.Info(LogMsgExpiredState, "user_id", userID, "action", action, "error", err)
		}
		return nil, err
	}

	fresh, err := s.spent.Consume(ctx, verified.tokenID, time.Until(verified.expiresAt))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSpend, err)
	}
	if !fresh {
		log.Warn(LogMsgReplayedState, "user_id", userID, "action", action)
		return nil, fmt.Errorf("%w: game state already used", domain.ErrInvalidState)
	}

	g := verified.game
	balance, err := step(g)
	if err != nil {
		s.release(ctx, verified.tokenID)
		return nil, err
	}

	var token string
	if g.Status == domain.GameStatusPlaying {
		if token, err = s.codec.Encode(userID, g); err != nil {
			s.release(ctx, verified.tokenID)
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToEncode, err)
		}
	}

	return s.result(ctx, userID, g, token, balance), nil
}

// release makes a spent state playable again. A failed release only costs the player that blob.
func (s *service) release(ctx context.Context, tokenID string) {
	if err := s.spent.Release(ctx, tokenID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReleaseFailed, "token_id", tokenID, "error", err)
	}
}

// settleMoney debits and credits in one transaction and returns the new balance.
// With nothing to move it only reads the balance.
func (s *service) settleMoney(ctx context.Context, userID uuid.UUID, debit, credit int64) (int64, error) {
	if debit == 0 && credit == 0 {
		balance, err := s.wallet.GetBalance(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
		}
		return balance, nil
	}

	tx, err := s.wallet.BeginWalletTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	var balance int64
	if debit > 0 {
		if balance, err = tx.Debit(ctx, userID, debit); err != nil {
			return 0, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
		}
	}
	if credit > 0 {
		if balance, err = tx.Credit(ctx, userID, credit); err != nil {
			return 0, fmt.Errorf("%s: %w", ErrContextFailedToCredit, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return balance, nil
}

func (s *service) result(ctx context.Context, userID uuid.UUID, g *domain.GameSession, token string, balance int64) *Result {
	res := &Result{View: View(g, balance)}
	if g.Status == domain.GameStatusFinished {
		res.Clear = true
		logger.FromContext(ctx).Info(LogMsgHandFinished,
			"user_id", userID, "outcome", g.Outcome, "bet", g.Bet, "payout", g.Payout)
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewBlackjackFinishedEvent(userID.String(), g.Bet, g.Payout, g.Outcome))
		}
		return res
	}
	res.State = token
	return res
}
