package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// walletTx implements repository.WalletTx on top of a pgx transaction
type walletTx struct {
	tx pgx.Tx
}

func (t *walletTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *walletTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Debit never clamps: the row is only updated when the balance covers the amount.
func (t *walletTx) Debit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	var balance int64
	err := t.tx.QueryRow(ctx, `
		UPDATE users SET balance = balance - $1
		WHERE user_id = $2 AND balance >= $1
		RETURNING balance`, amount, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDebit, err)
	}
	return balance, nil
}

func (t *walletTx) Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	var balance int64
	err := t.tx.QueryRow(ctx,
		"UPDATE users SET balance = balance + $1 WHERE user_id = $2 RETURNING balance", amount, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCredit, err)
	}
	return balance, nil
}

func (t *walletTx) GrantItems(ctx context.Context, grants []domain.ItemGrant) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(grants))
	if len(grants) == 0 {
		return ids, nil
	}

	batch := &pgx.Batch{}
	for i, g := range grants {
		ids[i] = uuid.New()
		batch.Queue(
			"INSERT INTO inventory (inventory_id, user_id, item_id, source) VALUES ($1, $2, $3, $4)",
			ids[i], g.UserID, g.ItemID, string(g.Source))
	}

	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGrantItems, err)
	}
	return ids, nil
}

// TakeInventoryItem deletes the row only when it belongs to userID.
func (t *walletTx) TakeInventoryItem(ctx context.Context, userID, inventoryID uuid.UUID) (*domain.InventoryItem, error) {
	row := t.tx.QueryRow(ctx, `
		WITH taken AS (
			DELETE FROM inventory
			WHERE inventory_id = $1 AND user_id = $2
			RETURNING inventory_id, user_id, item_id, source, acquired_at
		)
		SELECT inv.inventory_id, inv.user_id, inv.source, inv.acquired_at, `+itemColumns+`
		FROM taken inv
		JOIN items i ON i.item_id = inv.item_id`, inventoryID, userID)

	item, err := scanInventoryItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToTakeItem, err)
	}
	return &item, nil
}
