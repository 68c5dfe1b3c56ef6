package battle

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) *domain.Battle); ok {
		return fn(ctx, id), args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockRepository) ListWaitingBattles(ctx context.Context, limit int) ([]domain.Battle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Battle), args.Error(1)
}

func (m *MockRepository) BeginBattleTx(ctx context.Context) (repository.BattleTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.BattleTx), args.Error(1)
}

// MockTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Debit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) GrantItems(ctx context.Context, grants []domain.ItemGrant) ([]uuid.UUID, error) {
	args := m.Called(ctx, grants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTx) TakeInventoryItem(ctx context.Context, userID, inventoryID uuid.UUID) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userID, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockTx) CreateBattle(ctx context.Context, battle *domain.Battle) error {
	args := m.Called(ctx, battle)
	return args.Error(0)
}

func (m *MockTx) FinishBattleIfWaiting(ctx context.Context, battle *domain.Battle) (int64, error) {
	args := m.Called(ctx, battle)
	return args.Get(0).(int64), args.Error(1)
}

// MockCases
type MockCases struct {
	mock.Mock
}

func (m *MockCases) GetCase(ctx context.Context, id int) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

// MockBots
type MockBots struct {
	mock.Mock
}

func (m *MockBots) BotUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}
