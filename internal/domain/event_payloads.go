package domain

// BlackjackFinishedPayload is the event payload for blackjack.finished events
type BlackjackFinishedPayload struct {
	UserID    string      `json:"user_id"`
	Bet       int64       `json:"bet"`
	Payout    int64       `json:"payout"`
	Outcome   GameOutcome `json:"outcome"`
	Timestamp int64       `json:"timestamp"`
}

// CaseOpenedPayload is the event payload for case.opened events
type CaseOpenedPayload struct {
	UserID    string `json:"user_id"`
	CaseID    int    `json:"case_id"`
	Price     int64  `json:"price"`
	ItemID    int    `json:"item_id"`
	ItemName  string `json:"item_name"`
	Rarity    Rarity `json:"rarity"`
	Value     int64  `json:"value"`
	QuickSell bool   `json:"quick_sell"`
	Timestamp int64  `json:"timestamp"`
}

// BattleCreatedPayload is the event payload for battle.created events
type BattleCreatedPayload struct {
	BattleID      string `json:"battle_id"`
	CreatorID     string `json:"creator_id"`
	CaseID        int    `json:"case_id"`
	RoundCount    int    `json:"round_count"`
	PricePerRound int64  `json:"price_per_round"`
	Timestamp     int64  `json:"timestamp"`
}

// BattleFinishedPayload is the event payload for battle.finished events
type BattleFinishedPayload struct {
	BattleID     string  `json:"battle_id"`
	CreatorID    string  `json:"creator_id"`
	JoinerID     string  `json:"joiner_id"`
	WinnerID     string  `json:"winner_id"`
	CreatorTotal int64   `json:"creator_total"`
	JoinerTotal  int64   `json:"joiner_total"`
	TieBreak     bool    `json:"tie_break"`
	IsBot        bool    `json:"is_bot"`
	Rounds       []Round `json:"rounds"`
	Timestamp    int64   `json:"timestamp"`
}

// SlotsCompletedPayload is the event payload for slots.completed events
type SlotsCompletedPayload struct {
	UserID           string  `json:"user_id"`
	BetAmount        int64   `json:"bet_amount"`
	Reel1            string  `json:"reel1"`
	Reel2            string  `json:"reel2"`
	Reel3            string  `json:"reel3"`
	PayoutAmount     int64   `json:"payout_amount"`
	PayoutMultiplier float64 `json:"payout_multiplier"`
	TriggerType      string  `json:"trigger_type"`
	IsWin            bool    `json:"is_win"`
	IsNearMiss       bool    `json:"is_near_miss"`
}

// ItemSoldPayload is the event payload for item.sold events
type ItemSoldPayload struct {
	UserID          string `json:"user_id"`
	InventoryItemID string `json:"inventory_item_id"`
	ItemName        string `json:"item_name"`
	Value           int64  `json:"value"`
	Timestamp       int64  `json:"timestamp"`
}
