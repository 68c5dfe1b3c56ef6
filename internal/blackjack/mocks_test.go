package blackjack

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// MockWallet
type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWallet) ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockWallet) BeginWalletTx(ctx context.Context) (repository.WalletTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.WalletTx), args.Error(1)
}

// MockWalletTx
type MockWalletTx struct {
	mock.Mock
}

func (m *MockWalletTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWalletTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWalletTx) Debit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletTx) Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletTx) GrantItems(ctx context.Context, grants []domain.ItemGrant) ([]uuid.UUID, error) {
	args := m.Called(ctx, grants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockWalletTx) TakeInventoryItem(ctx context.Context, userID, inventoryID uuid.UUID) (*domain.InventoryItem, error) {
	args := m.Called(ctx, userID, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

// MockSpentTokenStore
type MockSpentTokenStore struct {
	mock.Mock
}

func (m *MockSpentTokenStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, id, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSpentTokenStore) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
