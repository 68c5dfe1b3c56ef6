package slots

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/repository"
	"github.com/tebnews/TEBNews_Go/internal/utils"
)

// Service defines the interface for slots operations
type Service interface {
	Spin(ctx context.Context, userID uuid.UUID, betAmount int64) (*domain.SlotsResult, error)
}

type service struct {
	wallet    repository.Wallet
	publisher event.Publisher
	rng       func(int) int // Injectable for testing
	printer   *message.Printer
}

// NewService creates a new slots service
func NewService(wallet repository.Wallet, publisher event.Publisher) Service {
	return &service{
		wallet:    wallet,
		publisher: publisher,
		rng:       utils.SecureIntn,
		printer:   message.NewPrinter(language.English),
	}
}

// Spin debits the bet, spins three reels and credits the payout in one transaction
func (s *service) Spin(ctx context.Context, userID uuid.UUID, betAmount int64) (*domain.SlotsResult, error) {
	log := logger.FromContext(ctx)

	if betAmount < MinBetAmount {
		return nil, fmt.Errorf("%w: minimum bet is %d", domain.ErrInvalidInput, MinBetAmount)
	}
	if betAmount > MaxBetAmount {
		return nil, fmt.Errorf("%w: maximum bet is %d", domain.ErrInvalidInput, MaxBetAmount)
	}

	reel1, reel2, reel3 := s.spinReels()
	payoutAmount, multiplier, triggerType := calculatePayout(reel1, reel2, reel3, betAmount)

	tx, err := s.wallet.BeginWalletTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.Debit(ctx, userID, betAmount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}
	if payoutAmount > 0 {
		if balance, err = tx.Credit(ctx, userID, payoutAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToCredit, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	isWin := payoutAmount > 0
	mult, _ := multiplier.Float64()
	result := &domain.SlotsResult{
		UserID:           userID,
		Reel1:            reel1,
		Reel2:            reel2,
		Reel3:            reel3,
		BetAmount:        betAmount,
		PayoutAmount:     payoutAmount,
		PayoutMultiplier: mult,
		IsWin:            isWin,
		IsNearMiss:       isTwoOfAKind(reel1, reel2, reel3),
		TriggerType:      triggerType,
		Message:          s.formatMessage(reel1, reel2, reel3, betAmount, payoutAmount, triggerType),
		Balance:          balance,
	}

	log.Info(LogMsgSpinCompleted,
		"user_id", userID,
		"bet", betAmount,
		"payout", payoutAmount,
		"trigger", triggerType)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewSlotsCompletedEvent(result))
	}

	return result, nil
}

// spinReels generates three random symbols using weighted distribution
func (s *service) spinReels() (string, string, string) {
	return s.selectWeightedSymbol(), s.selectWeightedSymbol(), s.selectWeightedSymbol()
}

// selectWeightedSymbol performs weighted random selection of a symbol
func (s *service) selectWeightedSymbol() string {
	return symbolForRoll(s.rng(TotalWeight))
}

func symbolForRoll(roll int) string {
	cumulative := 0
	for _, symbol := range Symbols {
		cumulative += SymbolWeights[symbol]
		if roll < cumulative {
			return symbol
		}
	}
	// Fallback (should never happen)
	return SymbolLemon
}

func isThreeOfAKind(reel1, reel2, reel3 string) bool {
	return reel1 == reel2 && reel2 == reel3
}

func isTwoOfAKind(reel1, reel2, reel3 string) bool {
	return !isThreeOfAKind(reel1, reel2, reel3) && (reel1 == reel2 || reel2 == reel3 || reel1 == reel3)
}

// calculatePayout determines the payout amount, multiplier, and trigger type.
// Fractional payouts are floored.
func calculatePayout(reel1, reel2, reel3 string, betAmount int64) (int64, decimal.Decimal, string) {
	bet := decimal.NewFromInt(betAmount)

	if isThreeOfAKind(reel1, reel2, reel3) {
		multiplier := PayoutMultipliers[reel1]
		return bet.Mul(multiplier).Floor().IntPart(), multiplier, determineWinType(multiplier)
	}

	// Consolation prize
	if isTwoOfAKind(reel1, reel2, reel3) {
		return bet.Mul(TwoMatchMultiplier).Floor().IntPart(), TwoMatchMultiplier, TriggerNormal
	}

	return 0, decimal.Zero, TriggerNormal
}

// determineWinType classifies the win based on multiplier
func determineWinType(multiplier decimal.Decimal) string {
	switch {
	case multiplier.GreaterThanOrEqual(MegaJackpotThreshold):
		return TriggerMegaJackpot
	case multiplier.GreaterThanOrEqual(JackpotThreshold):
		return TriggerJackpot
	case multiplier.GreaterThanOrEqual(BigWinThreshold):
		return TriggerBigWin
	default:
		return TriggerNormal
	}
}

// formatMessage creates a user-facing message for the result
func (s *service) formatMessage(reel1, reel2, reel3 string, betAmount, payoutAmount int64, triggerType string) string {
	p := s.printer
	if payoutAmount == 0 {
		return p.Sprintf("Better luck next time! You lost %d coins.", betAmount)
	}

	netWin := payoutAmount - betAmount

	switch triggerType {
	case TriggerMegaJackpot:
		return p.Sprintf("🌟 MEGA JACKPOT! 🌟 You won %d coins (net +%d)!", payoutAmount, netWin)
	case TriggerJackpot:
		return p.Sprintf("💎 JACKPOT! 💎 You won %d coins (net +%d)!", payoutAmount, netWin)
	case TriggerBigWin:
		return p.Sprintf("🎉 BIG WIN! You won %d coins (net +%d)!", payoutAmount, netWin)
	}

	switch {
	case netWin > 0:
		return p.Sprintf("You won %d coins (net +%d)!", payoutAmount, netWin)
	case netWin == 0:
		return p.Sprintf("You broke even! %d coins returned.", payoutAmount)
	case isTwoOfAKind(reel1, reel2, reel3):
		return p.Sprintf("Consolation! You got %d back. (net %d)", payoutAmount, netWin)
	default:
		return p.Sprintf("No luck! You won %d coins (net %d).", payoutAmount, netWin)
	}
}
