package slots

import "github.com/shopspring/decimal"

// Symbol constants
const (
	SymbolLemon   = "LEMON"
	SymbolCherry  = "CHERRY"
	SymbolBell    = "BELL"
	SymbolBar     = "BAR"
	SymbolSeven   = "SEVEN"
	SymbolDiamond = "DIAMOND"
	SymbolStar    = "STAR"
)

// Betting limits
const (
	MinBetAmount = 10
	MaxBetAmount = 10000
)

// Total of all symbol weights
const TotalWeight = 1000

// Symbols in the order the weighted walk visits them
var Symbols = []string{SymbolLemon, SymbolCherry, SymbolBell, SymbolBar, SymbolSeven, SymbolDiamond, SymbolStar}

// Thresholds for special triggers
var (
	BigWinThreshold      = decimal.NewFromInt(10)  // 10x bet triggers big win
	JackpotThreshold     = decimal.NewFromInt(50)  // 50x bet triggers jackpot
	MegaJackpotThreshold = decimal.NewFromInt(100) // 100x and up
	TwoMatchMultiplier   = decimal.RequireFromString("0.1")
)

// Symbol weights for weighted random selection (out of 1000)
var SymbolWeights = map[string]int{
	SymbolLemon:   400, // 40%
	SymbolCherry:  250, // 25%
	SymbolBell:    150, // 15%
	SymbolBar:     95,  // 9.5%
	SymbolSeven:   70,  // 7%
	SymbolDiamond: 25,  // 2.5%
	SymbolStar:    10,  // 1%
}

// PayoutMultipliers defines the payout for 3 matching symbols
var PayoutMultipliers = map[string]decimal.Decimal{
	SymbolLemon:   decimal.RequireFromString("0.5"), // Lose half bet
	SymbolCherry:  decimal.NewFromInt(2),
	SymbolBell:    decimal.NewFromInt(5),
	SymbolBar:     decimal.NewFromInt(10),
	SymbolSeven:   decimal.NewFromInt(25),
	SymbolDiamond: decimal.NewFromInt(100),
	SymbolStar:    decimal.NewFromInt(500),
}

// Trigger types for visual effects
const (
	TriggerNormal      = "normal"
	TriggerBigWin      = "big_win"
	TriggerJackpot     = "jackpot"
	TriggerMegaJackpot = "mega_jackpot"
)

// Log messages
const (
	LogMsgSpinCompleted = "Slots spin completed"
)

// Error contexts
const (
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToDebit    = "failed to debit bet"
	ErrContextFailedToCredit   = "failed to credit payout"
	ErrContextFailedToCommitTx = "failed to commit transaction"
)
