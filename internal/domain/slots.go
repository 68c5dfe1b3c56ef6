package domain

import "github.com/google/uuid"

// SlotsResult represents the outcome of a slots spin
type SlotsResult struct {
	UserID           uuid.UUID `json:"user_id"`
	Reel1            string    `json:"reel1"`             // Symbol name
	Reel2            string    `json:"reel2"`             // Symbol name
	Reel3            string    `json:"reel3"`             // Symbol name
	BetAmount        int64     `json:"bet_amount"`        // Amount wagered
	PayoutAmount     int64     `json:"payout_amount"`     // Amount won (0 if loss)
	PayoutMultiplier float64   `json:"payout_multiplier"` // Multiplier applied to bet
	Message          string    `json:"message"`           // User-facing result text
	IsWin            bool      `json:"is_win"`            // True if payout > 0
	IsNearMiss       bool      `json:"is_near_miss"`      // True if 2/3 symbols match
	TriggerType      string    `json:"trigger_type"`      // "normal", "big_win", "jackpot", "mega_jackpot"
	Balance          int64     `json:"balance"`
}
