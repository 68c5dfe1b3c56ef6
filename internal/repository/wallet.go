package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// Wallet defines balance and inventory reads plus the transaction entry point
type Wallet interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error)

	BeginWalletTx(ctx context.Context) (WalletTx, error)
}
