package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// WalletRepository implements repository.Wallet for PostgreSQL
type WalletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetBalance returns the current balance or domain.ErrUserNotFound
func (r *WalletRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, "SELECT balance FROM users WHERE user_id = $1", userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return balance, nil
}

// ListInventory returns the user's items, newest first
func (r *WalletRepository) ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT inv.inventory_id, inv.user_id, inv.source, inv.acquired_at, `+itemColumns+`
		FROM inventory inv
		JOIN items i ON i.item_id = inv.item_id
		WHERE inv.user_id = $1
		ORDER BY inv.acquired_at DESC, inv.inventory_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventory, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryItem, error) {
		return scanInventoryItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventory, err)
	}
	return items, nil
}

// BeginWalletTx starts a transaction for balance and inventory mutations
func (r *WalletRepository) BeginWalletTx(ctx context.Context) (repository.WalletTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &walletTx{tx: tx}, nil
}

func scanInventoryItem(row pgx.Row) (domain.InventoryItem, error) {
	var (
		inv    domain.InventoryItem
		source string
		rarity string
	)
	err := row.Scan(&inv.ID, &inv.UserID, &source, &inv.AcquiredAt,
		&inv.Item.ID, &inv.Item.CaseID, &inv.Item.Name, &rarity, &inv.Item.Value, &inv.Item.ImageURL)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	r, err := domain.ParseRarity(rarity)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	inv.Item.Rarity = r
	inv.Source = domain.ItemSource(source)
	return inv, nil
}
