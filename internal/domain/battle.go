package domain

import (
	"time"

	"github.com/google/uuid"
)

// BattleStatus represents the current state of a battle
type BattleStatus string

const (
	BattleStatusWaiting  BattleStatus = "WAITING"
	BattleStatusFinished BattleStatus = "FINISHED"
)

// Round limits for a single battle
const (
	MinBattleRounds = 1
	MaxBattleRounds = 10
)

// Battle is a case battle between a creator and a joiner (human or bot)
type Battle struct {
	ID            uuid.UUID    `json:"id"`
	Status        BattleStatus `json:"status"`
	CreatorID     uuid.UUID    `json:"creator_id"`
	JoinerID      *uuid.UUID   `json:"joiner_id,omitempty"`
	WinnerID      *uuid.UUID   `json:"winner_id,omitempty"`
	CaseID        int          `json:"case_id"`
	PricePerRound int64        `json:"price_per_round"`
	RoundCount    int          `json:"round_count"`
	IsBot         bool         `json:"is_bot"`
	Rounds        []Round      `json:"rounds"`
	CreatedAt     time.Time    `json:"created_at"`
	FinishedAt    *time.Time   `json:"finished_at,omitempty"`
}

// Round holds the items drawn for each side. Both are nil until the battle resolves.
type Round struct {
	Index       int   `json:"index"`
	CreatorItem *Item `json:"creator_item,omitempty"`
	JoinerItem  *Item `json:"joiner_item,omitempty"`
}

// EntryCost is the amount each human participant pays.
func (b *Battle) EntryCost() int64 {
	return b.PricePerRound * int64(b.RoundCount)
}

// Totals sums the drawn item values for each side.
func (b *Battle) Totals() (creator, joiner int64) {
	for _, r := range b.Rounds {
		if r.CreatorItem != nil {
			creator += r.CreatorItem.Value
		}
		if r.JoinerItem != nil {
			joiner += r.JoinerItem.Value
		}
	}
	return creator, joiner
}

// BattleResult is returned by join and bot battle operations.
type BattleResult struct {
	Battle       *Battle `json:"battle"`
	CreatorTotal int64   `json:"creator_total"`
	JoinerTotal  int64   `json:"joiner_total"`
	TieBreak     bool    `json:"tie_break"`
	Balance      int64   `json:"balance"`
}
