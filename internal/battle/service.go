// Package battle resolves case battles between two parties. The winner takes every drawn item.
package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/concurrency"
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/repository"
	"github.com/tebnews/TEBNews_Go/internal/reward"
	"github.com/tebnews/TEBNews_Go/internal/utils"
)

// CaseProvider resolves a case and its item pool
type CaseProvider interface {
	GetCase(ctx context.Context, id int) (*domain.Case, error)
}

// BotProvider returns the house account used as a bot opponent
type BotProvider interface {
	BotUser(ctx context.Context) (*domain.User, error)
}

// CreateResult is returned when a battle is opened in the lobby
type CreateResult struct {
	Battle  *domain.Battle `json:"battle"`
	Balance int64          `json:"balance"`
}

// Service defines the interface for battle operations
type Service interface {
	CreateBattle(ctx context.Context, userID uuid.UUID, caseID, rounds int) (*CreateResult, error)
	JoinBattle(ctx context.Context, userID, battleID uuid.UUID) (*domain.BattleResult, error)
	BotBattle(ctx context.Context, userID uuid.UUID, caseID, rounds int) (*domain.BattleResult, error)
	GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error)
	ListWaitingBattles(ctx context.Context, limit int) ([]domain.Battle, error)
}

type service struct {
	repo      repository.Battle
	cases     CaseProvider
	bots      BotProvider
	publisher event.Publisher
	locks     *concurrency.LockManager
	sampler   *reward.Sampler
	rng       func(int) int // Injectable for testing; picks the tie-break side
	now       func() time.Time
}

// NewService creates a new battle service
func NewService(repo repository.Battle, cases CaseProvider, bots BotProvider, publisher event.Publisher, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:      repo,
		cases:     cases,
		bots:      bots,
		publisher: publisher,
		locks:     locks,
		sampler:   reward.NewSampler(),
		rng:       utils.SecureIntn,
		now:       time.Now,
	}
}

func validateRounds(rounds int) error {
	if rounds < domain.MinBattleRounds || rounds > domain.MaxBattleRounds {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAction, ErrMsgInvalidRoundCount)
	}
	return nil
}

// playableCase returns the case only if its pool can be drawn from.
func (s *service) playableCase(ctx context.Context, caseID int) (*domain.Case, error) {
	c, err := s.cases.GetCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetCase, err)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("case %d: %w", caseID, domain.ErrEmptyPool)
	}
	return c, nil
}

func emptyRounds(n int) []domain.Round {
	rounds := make([]domain.Round, n)
	for i := range rounds {
		rounds[i].Index = i + 1
	}
	return rounds
}

func (s *service) CreateBattle(ctx context.Context, userID uuid.UUID, caseID, rounds int) (*CreateResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateBattleCalled, "user_id", userID, "case_id", caseID, "rounds", rounds)

	if err := validateRounds(rounds); err != nil {
		return nil, err
	}
	c, err := s.playableCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	b := &domain.Battle{
		ID:            uuid.New(),
		Status:        domain.BattleStatusWaiting,
		CreatorID:     userID,
		CaseID:        c.ID,
		PricePerRound: c.Price,
		RoundCount:    rounds,
		Rounds:        emptyRounds(rounds),
		CreatedAt:     s.now(),
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.Debit(ctx, userID, b.EntryCost())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}
	if err := tx.CreateBattle(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateBattle, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info(LogMsgBattleCreated, "battle_id", b.ID, "entry_cost", b.EntryCost())
	s.publish(ctx, event.NewBattleCreatedEvent(b))

	return &CreateResult{Battle: b, Balance: balance}, nil
}

func (s *service) JoinBattle(ctx context.Context, userID, battleID uuid.UUID) (*domain.BattleResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgJoinBattleCalled, "user_id", userID, "battle_id", battleID)

	var result *domain.BattleResult
	err := s.locks.WithLock(battleID.String(), func() error {
		var err error
		result, err = s.join(ctx, userID, battleID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.finished(ctx, result)
	return result, nil
}

// join settles a battle while the caller holds the battle's lock.
func (s *service) join(ctx context.Context, userID, battleID uuid.UUID) (*domain.BattleResult, error) {
	log := logger.FromContext(ctx)

	b, err := s.repo.GetBattle(ctx, battleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBattle, err)
	}
	if b.Status != domain.BattleStatusWaiting {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidState, ErrMsgBattleNotWaiting)
	}
	if b.CreatorID == userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAction, ErrMsgJoinOwnBattle)
	}

	c, err := s.playableCase(ctx, b.CaseID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.Debit(ctx, userID, b.EntryCost())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}

	b.JoinerID = &userID
	result, err := s.resolve(ctx, b, c.Items)
	if err != nil {
		return nil, err
	}

	rows, err := tx.FinishBattleIfWaiting(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToFinishBattle, err)
	}
	if rows == 0 {
		log.Warn(LogMsgJoinLostRace, "battle_id", battleID)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidState, ErrMsgBattleNotWaiting)
	}

	if err := s.grantToWinner(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	s.locks.Forget(battleID.String())

	// Winnings are items, so the joiner's balance is the post-debit one.
	result.Balance = balance
	return result, nil
}

func (s *service) BotBattle(ctx context.Context, userID uuid.UUID, caseID, rounds int) (*domain.BattleResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBotBattleCalled, "user_id", userID, "case_id", caseID, "rounds", rounds)

	if err := validateRounds(rounds); err != nil {
		return nil, err
	}
	c, err := s.playableCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	bot, err := s.bots.BotUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBot, err)
	}
	if bot.ID == userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAction, ErrMsgBotCannotPlay)
	}

	b := &domain.Battle{
		ID:            uuid.New(),
		CreatorID:     userID,
		JoinerID:      &bot.ID,
		CaseID:        c.ID,
		PricePerRound: c.Price,
		RoundCount:    rounds,
		IsBot:         true,
		CreatedAt:     s.now(),
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// The bot plays for free; only the player pays.
	balance, err := tx.Debit(ctx, userID, b.EntryCost())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}

	result, err := s.resolve(ctx, b, c.Items)
	if err != nil {
		return nil, err
	}
	if err := tx.CreateBattle(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateBattle, err)
	}
	if err := s.grantToWinner(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	result.Balance = balance
	s.finished(ctx, result)
	return result, nil
}

func (s *service) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	b, err := s.repo.GetBattle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBattle, err)
	}
	return b, nil
}

func (s *service) ListWaitingBattles(ctx context.Context, limit int) ([]domain.Battle, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	battles, err := s.repo.ListWaitingBattles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListBattles, err)
	}
	return battles, nil
}

// resolve draws every round for both sides and decides the winner.
// b.JoinerID must be set. The battle is marked finished in memory only.
func (s *service) resolve(ctx context.Context, b *domain.Battle, pool []domain.Item) (*domain.BattleResult, error) {
	creatorItems, err := s.sampler.SampleN(pool, b.RoundCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDraw, err)
	}
	joinerItems, err := s.sampler.SampleN(pool, b.RoundCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDraw, err)
	}

	b.Rounds = emptyRounds(b.RoundCount)
	for i := range b.Rounds {
		b.Rounds[i].CreatorItem = &creatorItems[i]
		b.Rounds[i].JoinerItem = &joinerItems[i]
	}

	creatorTotal, joinerTotal := b.Totals()
	winner, tieBreak := s.pickWinner(b.CreatorID, *b.JoinerID, creatorTotal, joinerTotal)
	if tieBreak {
		logger.FromContext(ctx).Info(LogMsgBattleTieBreak, "battle_id", b.ID, "total", creatorTotal, "winner_id", winner)
	}

	finishedAt := s.now()
	b.WinnerID = &winner
	b.Status = domain.BattleStatusFinished
	b.FinishedAt = &finishedAt

	return &domain.BattleResult{
		Battle:       b,
		CreatorTotal: creatorTotal,
		JoinerTotal:  joinerTotal,
		TieBreak:     tieBreak,
	}, nil
}

// pickWinner returns the side with the higher total. Ties are a fair coin flip
// over the ID-sorted pair so the outcome does not depend on who created the battle.
func (s *service) pickWinner(creator, joiner uuid.UUID, creatorTotal, joinerTotal int64) (uuid.UUID, bool) {
	switch {
	case creatorTotal > joinerTotal:
		return creator, false
	case joinerTotal > creatorTotal:
		return joiner, false
	}
	sides := [tieBreakSides]uuid.UUID{creator, joiner}
	if sides[1].String() < sides[0].String() {
		sides[0], sides[1] = sides[1], sides[0]
	}
	return sides[s.rng(tieBreakSides)], true
}

func (s *service) grantToWinner(ctx context.Context, tx repository.BattleTx, b *domain.Battle) error {
	grants := make([]domain.ItemGrant, 0, 2*len(b.Rounds))
	for _, r := range b.Rounds {
		for _, item := range []*domain.Item{r.CreatorItem, r.JoinerItem} {
			grants = append(grants, domain.ItemGrant{UserID: *b.WinnerID, ItemID: item.ID, Source: domain.ItemSourceBattle})
		}
	}
	if _, err := tx.GrantItems(ctx, grants); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGrantItems, err)
	}
	return nil
}

func (s *service) finished(ctx context.Context, result *domain.BattleResult) {
	b := result.Battle
	logger.FromContext(ctx).Info(LogMsgBattleFinished,
		"battle_id", b.ID,
		"winner_id", *b.WinnerID,
		"creator_total", result.CreatorTotal,
		"joiner_total", result.JoinerTotal,
		"is_bot", b.IsBot)
	s.publish(ctx, event.NewBattleFinishedEvent(result))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
