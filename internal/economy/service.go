// Package economy holds wallet and inventory operations outside of the games themselves.
package economy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// SellResult contains the result of a sell operation
type SellResult struct {
	Item        domain.InventoryItem `json:"item"`
	MoneyGained int64                `json:"money_gained"`
	Balance     int64                `json:"balance"`
}

// Service defines the interface for economy operations
type Service interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error)
	// SellItem removes an owned inventory entry and credits its value.
	SellItem(ctx context.Context, userID, inventoryID uuid.UUID) (*SellResult, error)
}

type service struct {
	wallet    repository.Wallet
	publisher event.Publisher
}

// NewService creates a new economy service
func NewService(wallet repository.Wallet, publisher event.Publisher) Service {
	return &service{
		wallet:    wallet,
		publisher: publisher,
	}
}

func (s *service) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	balance, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetBalanceFailed, err)
	}
	return balance, nil
}

func (s *service) ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	items, err := s.wallet.ListInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListInventoryFailed, err)
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	return items, nil
}

func (s *service) SellItem(ctx context.Context, userID, inventoryID uuid.UUID) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellItemCalled, "user_id", userID, "inventory_id", inventoryID)

	tx, err := s.wallet.BeginWalletTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Only rows owned by userID can be taken; anything else reads as not found.
	item, err := tx.TakeInventoryItem(ctx, userID, inventoryID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTakeItemFailed, inventoryID, err)
	}

	balance, err := tx.Credit(ctx, userID, item.Item.Value)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgItemSold, "user_id", userID, "item", item.Item.Name, "value", item.Item.Value)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewItemSoldEvent(item))
	}

	return &SellResult{
		Item:        *item,
		MoneyGained: item.Item.Value,
		Balance:     balance,
	}, nil
}
