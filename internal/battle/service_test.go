package battle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tebnews/TEBNews_Go/internal/concurrency"
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/reward"
	"github.com/tebnews/TEBNews_Go/internal/utils"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// Both items are common, so every draw lands in the common tier and the pick decides.
func battleCase() *domain.Case {
	return &domain.Case{
		ID:    4,
		Name:  "Battle Case",
		Price: 35,
		Items: []domain.Item{
			{ID: 40, CaseID: 4, Name: "Cheap", Rarity: domain.RarityCommon, Value: 5},
			{ID: 41, CaseID: 4, Name: "Pricey", Rarity: domain.RarityCommon, Value: 50},
		},
	}
}

// sequence returns picks in order, then repeats the last one.
func sequence(picks ...int) func(int) int {
	var mu sync.Mutex
	i := 0
	return func(int) int {
		mu.Lock()
		defer mu.Unlock()
		p := picks[i]
		if i < len(picks)-1 {
			i++
		}
		return p
	}
}

type fixture struct {
	svc   *service
	repo  *MockRepository
	cases *MockCases
	bots  *MockBots
	pub   *MockPublisher
}

func setup(picks ...int) *fixture {
	f := &fixture{
		repo:  &MockRepository{},
		cases: &MockCases{},
		bots:  &MockBots{},
		pub:   &MockPublisher{},
	}
	f.svc = NewService(f.repo, f.cases, f.bots, f.pub, concurrency.NewLockManager()).(*service)
	f.svc.sampler = reward.NewSamplerWithSource(func() float64 { return 10 }, sequence(picks...))
	f.svc.rng = func(int) int { return 0 }
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) expectTx() *MockTx {
	tx := &MockTx{}
	f.repo.On("BeginBattleTx", mock.Anything).Return(tx, nil).Once()
	tx.On("Rollback", mock.Anything).Return(nil)
	return tx
}

func waitingBattle(creator uuid.UUID, rounds int) *domain.Battle {
	return &domain.Battle{
		ID:            uuid.New(),
		Status:        domain.BattleStatusWaiting,
		CreatorID:     creator,
		CaseID:        4,
		PricePerRound: 35,
		RoundCount:    rounds,
		Rounds:        emptyRounds(rounds),
		CreatedAt:     fixedNow,
	}
}

func TestCreateBattle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects round counts outside 1..10", func(t *testing.T) {
		f := setup(0)
		for _, n := range []int{0, -1, 11} {
			_, err := f.svc.CreateBattle(ctx, userID, 4, n)
			assert.ErrorIs(t, err, domain.ErrInvalidAction, "rounds=%d", n)
		}
		f.cases.AssertNotCalled(t, "GetCase", mock.Anything, mock.Anything)
	})

	t.Run("debits price times rounds and stores a waiting battle", func(t *testing.T) {
		f := setup(0)
		f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
		tx := f.expectTx()
		tx.On("Debit", mock.Anything, userID, int64(105)).Return(int64(895), nil)
		tx.On("CreateBattle", mock.Anything, mock.MatchedBy(func(b *domain.Battle) bool {
			return b.Status == domain.BattleStatusWaiting && b.RoundCount == 3 && len(b.Rounds) == 3 &&
				b.Rounds[0].CreatorItem == nil && b.JoinerID == nil
		})).Return(nil)
		tx.On("Commit", mock.Anything).Return(nil)
		f.pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
			return e.Type == event.BattleCreated
		})).Once()

		res, err := f.svc.CreateBattle(ctx, userID, 4, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(895), res.Balance)
		assert.Equal(t, int64(35), res.Battle.PricePerRound)
		assert.Equal(t, []int{1, 2, 3}, []int{res.Battle.Rounds[0].Index, res.Battle.Rounds[1].Index, res.Battle.Rounds[2].Index})
		f.pub.AssertExpectations(t)
	})

	t.Run("insufficient funds creates nothing", func(t *testing.T) {
		f := setup(0)
		f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
		tx := f.expectTx()
		tx.On("Debit", mock.Anything, userID, int64(350)).Return(int64(0), domain.ErrInsufficientFunds)

		_, err := f.svc.CreateBattle(ctx, userID, 4, 10)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		tx.AssertNotCalled(t, "CreateBattle", mock.Anything, mock.Anything)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
		f.pub.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything)
	})

	t.Run("empty pool", func(t *testing.T) {
		f := setup(0)
		f.cases.On("GetCase", mock.Anything, 9).Return(&domain.Case{ID: 9, Price: 1}, nil)

		_, err := f.svc.CreateBattle(ctx, userID, 9, 1)
		assert.ErrorIs(t, err, domain.ErrEmptyPool)
		f.repo.AssertNotCalled(t, "BeginBattleTx", mock.Anything)
	})
}

func TestJoinBattle_Validation(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	joiner := uuid.New()

	t.Run("unknown battle", func(t *testing.T) {
		f := setup(0)
		id := uuid.New()
		f.repo.On("GetBattle", mock.Anything, id).Return(nil, domain.ErrBattleNotFound)

		_, err := f.svc.JoinBattle(ctx, joiner, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("finished battle", func(t *testing.T) {
		f := setup(0)
		b := waitingBattle(creator, 1)
		b.Status = domain.BattleStatusFinished
		f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)

		_, err := f.svc.JoinBattle(ctx, joiner, b.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		f.repo.AssertNotCalled(t, "BeginBattleTx", mock.Anything)
	})

	t.Run("own battle", func(t *testing.T) {
		f := setup(0)
		b := waitingBattle(creator, 1)
		f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)

		_, err := f.svc.JoinBattle(ctx, creator, b.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidAction)
		f.repo.AssertNotCalled(t, "BeginBattleTx", mock.Anything)
	})

	t.Run("joiner cannot afford entry", func(t *testing.T) {
		f := setup(0)
		b := waitingBattle(creator, 2)
		f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
		f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
		tx := f.expectTx()
		tx.On("Debit", mock.Anything, joiner, int64(70)).Return(int64(0), domain.ErrInsufficientFunds)

		_, err := f.svc.JoinBattle(ctx, joiner, b.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		tx.AssertNotCalled(t, "FinishBattleIfWaiting", mock.Anything, mock.Anything)
		tx.AssertNotCalled(t, "GrantItems", mock.Anything, mock.Anything)
	})
}

func TestJoinBattle_WinnerTakesAll(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	joiner := uuid.New()

	// Creator draws Cheap twice, joiner draws Pricey twice.
	f := setup(0, 0, 1, 1)
	b := waitingBattle(creator, 2)
	f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
	f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
	tx := f.expectTx()
	tx.On("Debit", mock.Anything, joiner, int64(70)).Return(int64(30), nil)
	tx.On("FinishBattleIfWaiting", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("GrantItems", mock.Anything, []domain.ItemGrant{
		{UserID: joiner, ItemID: 40, Source: domain.ItemSourceBattle},
		{UserID: joiner, ItemID: 41, Source: domain.ItemSourceBattle},
		{UserID: joiner, ItemID: 40, Source: domain.ItemSourceBattle},
		{UserID: joiner, ItemID: 41, Source: domain.ItemSourceBattle},
	}).Return([]uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}, nil)
	tx.On("Commit", mock.Anything).Return(nil)
	f.pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.BattleFinished && e.GetMetadataValue(event.MetadataKeyBattleID) == b.ID.String()
	})).Once()

	res, err := f.svc.JoinBattle(ctx, joiner, b.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(10), res.CreatorTotal)
	assert.Equal(t, int64(100), res.JoinerTotal)
	assert.False(t, res.TieBreak)
	assert.Equal(t, int64(30), res.Balance)
	require.NotNil(t, res.Battle.WinnerID)
	assert.Equal(t, joiner, *res.Battle.WinnerID)
	assert.Equal(t, domain.BattleStatusFinished, res.Battle.Status)
	require.NotNil(t, res.Battle.FinishedAt)
	assert.Len(t, res.Battle.Rounds, 2)
	tx.AssertExpectations(t)
	f.pub.AssertExpectations(t)
}

func TestJoinBattle_LostRace(t *testing.T) {
	ctx := context.Background()
	f := setup(0)
	b := waitingBattle(uuid.New(), 1)
	joiner := uuid.New()
	f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
	f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
	tx := f.expectTx()
	tx.On("Debit", mock.Anything, joiner, int64(35)).Return(int64(65), nil)
	tx.On("FinishBattleIfWaiting", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := f.svc.JoinBattle(ctx, joiner, b.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	tx.AssertNotCalled(t, "GrantItems", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
	f.pub.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything)
}

func TestJoinBattle_FinishError(t *testing.T) {
	ctx := context.Background()
	f := setup(0)
	b := waitingBattle(uuid.New(), 1)
	joiner := uuid.New()
	f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
	f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
	tx := f.expectTx()
	tx.On("Debit", mock.Anything, joiner, int64(35)).Return(int64(65), nil)
	tx.On("FinishBattleIfWaiting", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))

	_, err := f.svc.JoinBattle(ctx, joiner, b.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextFailedToFinishBattle)
}

func TestJoinBattle_TieIsCoinFlip(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	joiner := uuid.New()
	lower, higher := creator, joiner
	if higher.String() < lower.String() {
		lower, higher = higher, lower
	}

	for side, want := range []uuid.UUID{lower, higher} {
		f := setup(0)
		f.svc.rng = func(int) int { return side }
		b := waitingBattle(creator, 3)
		f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
		f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
		tx := f.expectTx()
		tx.On("Debit", mock.Anything, joiner, int64(105)).Return(int64(0), nil)
		tx.On("FinishBattleIfWaiting", mock.Anything, mock.Anything).Return(int64(1), nil)
		tx.On("GrantItems", mock.Anything, mock.MatchedBy(func(g []domain.ItemGrant) bool {
			return len(g) == 6 && g[0].UserID == want && g[5].UserID == want
		})).Return([]uuid.UUID{}, nil)
		tx.On("Commit", mock.Anything).Return(nil)
		f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

		res, err := f.svc.JoinBattle(ctx, joiner, b.ID)

		require.NoError(t, err)
		assert.True(t, res.TieBreak)
		assert.Equal(t, res.CreatorTotal, res.JoinerTotal)
		assert.Equal(t, want, *res.Battle.WinnerID)
	}
}

func TestPickWinner_TieIsFair(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping distribution test in short mode")
	}
	f := setup(0)
	f.svc.rng = utils.SecureIntn
	creator := uuid.New()
	joiner := uuid.New()

	const trials = 10000
	creatorWins := 0
	for i := 0; i < trials; i++ {
		winner, tie := f.svc.pickWinner(creator, joiner, 70, 70)
		require.True(t, tie)
		if winner == creator {
			creatorWins++
		}
	}
	share := float64(creatorWins) / trials
	assert.InDelta(t, 0.5, share, 0.03)
}

func TestJoinBattle_ConcurrentJoinsResolveOnce(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	b := waitingBattle(creator, 1)

	f := setup(0)
	// The per-battle lock serialises joins; the repository flips to FINISHED after the first.
	var mu sync.Mutex
	finished := false
	f.repo.On("GetBattle", mock.Anything, b.ID).Return(func(context.Context, uuid.UUID) *domain.Battle {
		mu.Lock()
		defer mu.Unlock()
		cp := *b
		if finished {
			cp.Status = domain.BattleStatusFinished
		}
		return &cp
	}, nil)
	f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
	tx := &MockTx{}
	f.repo.On("BeginBattleTx", mock.Anything).Return(tx, nil)
	tx.On("Rollback", mock.Anything).Return(nil)
	tx.On("Debit", mock.Anything, mock.Anything, int64(35)).Return(int64(0), nil)
	tx.On("FinishBattleIfWaiting", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("GrantItems", mock.Anything, mock.Anything).Return([]uuid.UUID{}, nil)
	tx.On("Commit", mock.Anything).Run(func(mock.Arguments) {
		mu.Lock()
		finished = true
		mu.Unlock()
	}).Return(nil)
	f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	const joiners = 8
	var wg sync.WaitGroup
	errs := make(chan error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.JoinBattle(ctx, uuid.New(), b.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	}
	assert.Equal(t, 1, wins)
	tx.AssertNumberOfCalls(t, "Commit", 1)
}

func TestBotBattle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bot := &domain.User{ID: uuid.New(), Username: "teb-bot", IsBot: true}

	t.Run("player pays, bot does not, winner takes all", func(t *testing.T) {
		// Player draws Pricey, bot draws Cheap.
		f := setup(1, 0)
		f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
		f.bots.On("BotUser", mock.Anything).Return(bot, nil)
		tx := f.expectTx()
		tx.On("Debit", mock.Anything, userID, int64(35)).Return(int64(965), nil).Once()
		tx.On("CreateBattle", mock.Anything, mock.MatchedBy(func(b *domain.Battle) bool {
			return b.IsBot && b.Status == domain.BattleStatusFinished && *b.JoinerID == bot.ID
		})).Return(nil)
		tx.On("GrantItems", mock.Anything, []domain.ItemGrant{
			{UserID: userID, ItemID: 41, Source: domain.ItemSourceBattle},
			{UserID: userID, ItemID: 40, Source: domain.ItemSourceBattle},
		}).Return([]uuid.UUID{uuid.New(), uuid.New()}, nil)
		tx.On("Commit", mock.Anything).Return(nil)
		f.pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
			return e.Type == event.BattleFinished
		})).Once()

		res, err := f.svc.BotBattle(ctx, userID, 4, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(965), res.Balance)
		assert.Equal(t, userID, *res.Battle.WinnerID)
		assert.Equal(t, int64(50), res.CreatorTotal)
		assert.Equal(t, int64(5), res.JoinerTotal)
		tx.AssertNumberOfCalls(t, "Debit", 1)
		tx.AssertNotCalled(t, "FinishBattleIfWaiting", mock.Anything, mock.Anything)
	})

	t.Run("bot account cannot battle itself", func(t *testing.T) {
		f := setup(0)
		f.cases.On("GetCase", mock.Anything, 4).Return(battleCase(), nil)
		f.bots.On("BotUser", mock.Anything).Return(bot, nil)

		_, err := f.svc.BotBattle(ctx, bot.ID, 4, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidAction)
	})

	t.Run("invalid rounds", func(t *testing.T) {
		f := setup(0)
		_, err := f.svc.BotBattle(ctx, userID, 4, 11)
		assert.ErrorIs(t, err, domain.ErrInvalidAction)
		f.bots.AssertNotCalled(t, "BotUser", mock.Anything)
	})
}

func TestListWaitingBattles_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	f := setup(0)
	f.repo.On("ListWaitingBattles", mock.Anything, DefaultListLimit).Return([]domain.Battle{}, nil).Once()
	f.repo.On("ListWaitingBattles", mock.Anything, MaxListLimit).Return([]domain.Battle{}, nil).Once()
	f.repo.On("ListWaitingBattles", mock.Anything, 5).Return([]domain.Battle{{ID: uuid.New()}}, nil).Once()

	_, err := f.svc.ListWaitingBattles(ctx, 0)
	require.NoError(t, err)
	_, err = f.svc.ListWaitingBattles(ctx, 1000)
	require.NoError(t, err)
	got, err := f.svc.ListWaitingBattles(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	f.repo.AssertExpectations(t)
}

func TestJoinBattle_WaitsForBattleLock(t *testing.T) {
	f := setup(0)
	b := waitingBattle(uuid.New(), 1)
	b.Status = domain.BattleStatusFinished
	f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)

	lock := f.svc.locks.GetLock(b.ID.String())
	lock.Lock()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.JoinBattle(context.Background(), uuid.New(), b.ID)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	f.repo.AssertNotCalled(t, "GetBattle", mock.Anything, mock.Anything)

	lock.Unlock()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	case <-time.After(time.Second):
		t.Fatal("join did not resume after the lock was released")
	}
	f.repo.AssertCalled(t, "GetBattle", mock.Anything, b.ID)
}
