package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// Battle defines the interface for data access required by the battle service
type Battle interface {
	// GetBattle returns a battle with its rounds or domain.ErrBattleNotFound.
	GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error)
	ListWaitingBattles(ctx context.Context, limit int) ([]domain.Battle, error)

	BeginBattleTx(ctx context.Context) (BattleTx, error)
}

// BattleTx extends WalletTx with battle writes.
// This enables wrapping debit, resolution and grants in a single atomic transaction
type BattleTx interface {
	WalletTx

	// CreateBattle inserts the battle and one row per round, resolved or not.
	CreateBattle(ctx context.Context, battle *domain.Battle) error
	// FinishBattleIfWaiting moves a WAITING battle to FINISHED and writes its rounds.
	// Returns rows affected; 0 means the battle was no longer waiting.
	FinishBattleIfWaiting(ctx context.Context, battle *domain.Battle) (int64, error)
}
