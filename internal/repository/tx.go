package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WalletTx carries the balance and inventory mutations every game resolver performs
// inside a single transaction.
type WalletTx interface {
	Tx

	// Debit subtracts amount only if the balance covers it and returns the new balance.
	// Returns domain.ErrInsufficientFunds when no row was updated.
	Debit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	// Credit adds amount and returns the new balance.
	Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)

	// GrantItems adds one inventory row per grant and returns the new row ids in order.
	GrantItems(ctx context.Context, grants []domain.ItemGrant) ([]uuid.UUID, error)
	// TakeInventoryItem removes an owned inventory row and returns it.
	// Returns domain.ErrItemNotFound when the row does not exist or belongs to someone else.
	TakeInventoryItem(ctx context.Context, userID, inventoryID uuid.UUID) (*domain.InventoryItem, error)
}
