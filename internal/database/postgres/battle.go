package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// BattleRepository implements repository.Battle for PostgreSQL
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

const battleColumns = `battle_id, status, creator_id, joiner_id, winner_id, case_id,
	price_per_round, round_count, is_bot, created_at, finished_at`

func scanBattle(row pgx.Row) (*domain.Battle, error) {
	var (
		b      domain.Battle
		status string
	)
	err := row.Scan(&b.ID, &status, &b.CreatorID, &b.JoinerID, &b.WinnerID, &b.CaseID,
		&b.PricePerRound, &b.RoundCount, &b.IsBot, &b.CreatedAt, &b.FinishedAt)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BattleStatus(status)
	return &b, nil
}

// GetBattle returns a battle with its rounds or domain.ErrBattleNotFound
func (r *BattleRepository) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	b, err := scanBattle(r.db.QueryRow(ctx, "SELECT "+battleColumns+" FROM battles WHERE battle_id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBattleNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBattle, err)
	}

	rounds, err := r.getRounds(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Rounds = rounds
	return b, nil
}

func (r *BattleRepository) getRounds(ctx context.Context, battleID uuid.UUID) ([]domain.Round, error) {
	rows, err := r.db.Query(ctx, `
		SELECT br.round_index,
		       ci.item_id, ci.case_id, ci.name, ci.rarity, ci.value, ci.image_url,
		       ji.item_id, ji.case_id, ji.name, ji.rarity, ji.value, ji.image_url
		FROM battle_rounds br
		LEFT JOIN items ci ON ci.item_id = br.creator_item_id
		LEFT JOIN items ji ON ji.item_id = br.joiner_item_id
		WHERE br.battle_id = $1
		ORDER BY br.round_index`, battleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRounds, err)
	}

	rounds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Round, error) {
		var (
			round                  domain.Round
			cID, cCase, jID, jCase pgtype.Int4
			cName, cRarity, cImage pgtype.Text
			jName, jRarity, jImage pgtype.Text
			cValue, jValue         pgtype.Int8
		)
		if err := row.Scan(&round.Index,
			&cID, &cCase, &cName, &cRarity, &cValue, &cImage,
			&jID, &jCase, &jName, &jRarity, &jValue, &jImage); err != nil {
			return domain.Round{}, err
		}

		var err error
		if round.CreatorItem, err = optionalItem(cID, cCase, cName, cRarity, cImage, cValue); err != nil {
			return domain.Round{}, err
		}
		if round.JoinerItem, err = optionalItem(jID, jCase, jName, jRarity, jImage, jValue); err != nil {
			return domain.Round{}, err
		}
		return round, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRounds, err)
	}
	return rounds, nil
}

// ListWaitingBattles returns open battles, newest first. Rounds are empty placeholders.
func (r *BattleRepository) ListWaitingBattles(ctx context.Context, limit int) ([]domain.Battle, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+battleColumns+`
		FROM battles
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`, string(domain.BattleStatusWaiting), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBattles, err)
	}

	battles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Battle, error) {
		b, err := scanBattle(row)
		if err != nil {
			return domain.Battle{}, err
		}
		b.Rounds = make([]domain.Round, b.RoundCount)
		for i := range b.Rounds {
			b.Rounds[i].Index = i + 1
		}
		return *b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBattles, err)
	}
	return battles, nil
}

// BeginBattleTx starts a transaction covering wallet and battle writes
func (r *BattleRepository) BeginBattleTx(ctx context.Context) (repository.BattleTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &battleTx{walletTx: walletTx{tx: tx}}, nil
}

// battleTx implements repository.BattleTx
type battleTx struct {
	walletTx
}

func (t *battleTx) CreateBattle(ctx context.Context, battle *domain.Battle) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO battles (battle_id, status, creator_id, joiner_id, winner_id, case_id,
			price_per_round, round_count, is_bot, created_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		battle.ID, string(battle.Status), battle.CreatorID, battle.JoinerID, battle.WinnerID, battle.CaseID,
		battle.PricePerRound, battle.RoundCount, battle.IsBot, battle.CreatedAt, battle.FinishedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertBattle, err)
	}

	batch := &pgx.Batch{}
	for _, round := range battle.Rounds {
		batch.Queue(`
			INSERT INTO battle_rounds (battle_id, round_index, creator_item_id, joiner_item_id)
			VALUES ($1, $2, $3, $4)`,
			battle.ID, round.Index, itemIDOrNil(round.CreatorItem), itemIDOrNil(round.JoinerItem))
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRounds, err)
	}
	return nil
}

// FinishBattleIfWaiting is the compare-and-swap guarding WAITING -> FINISHED.
func (t *battleTx) FinishBattleIfWaiting(ctx context.Context, battle *domain.Battle) (int64, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE battles
		SET status = $2, joiner_id = $3, winner_id = $4, is_bot = $5, finished_at = $6
		WHERE battle_id = $1 AND status = $7`,
		battle.ID, string(domain.BattleStatusFinished), battle.JoinerID, battle.WinnerID, battle.IsBot,
		battle.FinishedAt, string(domain.BattleStatusWaiting))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToFinishBattle, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, round := range battle.Rounds {
		batch.Queue(`
			UPDATE battle_rounds SET creator_item_id = $3, joiner_item_id = $4
			WHERE battle_id = $1 AND round_index = $2`,
			battle.ID, round.Index, itemIDOrNil(round.CreatorItem), itemIDOrNil(round.JoinerItem))
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRounds, err)
	}
	return tag.RowsAffected(), nil
}
