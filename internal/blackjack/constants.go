package blackjack

import "time"

// Table rules
const (
	BlackjackScore   = 21
	DealerStandScore = 17
	InitialHandSize  = 2
	DeckSize         = 52
)

// Betting limits
const (
	MinBet = 1
	MaxBet = 10000
)

// Payout multipliers applied to the bet
const (
	NaturalMultiplier = "2.5" // 3:2 on top of the returned bet
	WinMultiplier     = 2
	PushMultiplier    = 1
)

// Replay guard sizing
const (
	DefaultReplayCacheSize = 100000
	DefaultStateTTL        = time.Hour

	spentTokenKeyPrefix = "tebnews:blackjack:spent:"
)

// StateIssuer is the iss claim of signed game state.
const StateIssuer = "tebnews-blackjack"

// stateSealLabel separates the sealing key from the signing key derived from the same secret.
const stateSealLabel = "tebnews-blackjack-seal:"

// Player-facing messages
const (
	MsgYourMove      = "Hit, stand or double?"
	MsgHitOrStand    = "Hit or stand?"
	MsgBlackjack     = "Blackjack! You win %d."
	MsgPush          = "Push. Your bet of %d is returned."
	MsgPlayerWin     = "You win %d!"
	MsgDealerBust    = "Dealer busts! You win %d!"
	MsgDealerWin     = "Dealer wins with %d."
	MsgPlayerBust    = "Bust! You lose %d."
	MsgDealerNatural = "Dealer has blackjack."
)

// Log messages
const (
	LogMsgDealCalled    = "Blackjack deal called"
	LogMsgActionCalled  = "Blackjack action called"
	LogMsgTamperedState = "Rejected blackjack state with bad signature"
	LogMsgReplayedState = "Rejected replayed blackjack state"
	LogMsgExpiredState  = "Rejected expired blackjack state"
	LogMsgHandFinished  = "Blackjack hand finished"
	LogMsgReleaseFailed = "Failed to release blackjack state after a failed action"
)

// Error contexts
const (
	ErrContextFailedToBeginTx    = "failed to begin transaction"
	ErrContextFailedToDebit      = "failed to debit bet"
	ErrContextFailedToCredit     = "failed to credit payout"
	ErrContextFailedToCommitTx   = "failed to commit transaction"
	ErrContextFailedToGetBalance = "failed to get balance"
	ErrContextFailedToEncode     = "failed to encode game state"
	ErrContextFailedToDraw       = "failed to draw card"
	ErrContextFailedToSeal       = "failed to seal game state"
	ErrContextFailedToSpend      = "failed to record spent game state"
)
