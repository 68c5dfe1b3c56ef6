package battle

// Listing limits for the lobby
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Tie-break sides, indexes into the ID-sorted participant pair
const tieBreakSides = 2

// Log messages
const (
	LogMsgCreateBattleCalled = "CreateBattle called"
	LogMsgJoinBattleCalled   = "JoinBattle called"
	LogMsgBotBattleCalled    = "BotBattle called"
	LogMsgBattleCreated      = "Battle created"
	LogMsgBattleFinished     = "Battle finished"
	LogMsgBattleTieBreak     = "Battle tied, coin flip decided winner"
	LogMsgJoinLostRace       = "Battle was resolved by another joiner"
)

// Error messages
const (
	ErrMsgInvalidRoundCount = "round count must be between 1 and 10"
	ErrMsgJoinOwnBattle     = "cannot join your own battle"
	ErrMsgBattleNotWaiting  = "battle is not waiting for an opponent"
	ErrMsgBotCannotPlay     = "bot account cannot start a bot battle"
)

// Error contexts
const (
	ErrContextFailedToGetCase      = "failed to get case"
	ErrContextFailedToGetBattle    = "failed to get battle"
	ErrContextFailedToListBattles  = "failed to list battles"
	ErrContextFailedToGetBot       = "failed to get bot user"
	ErrContextFailedToBeginTx      = "failed to begin transaction"
	ErrContextFailedToDebit        = "failed to debit entry cost"
	ErrContextFailedToDraw         = "failed to draw round items"
	ErrContextFailedToCreateBattle = "failed to create battle"
	ErrContextFailedToFinishBattle = "failed to finish battle"
	ErrContextFailedToGrantItems   = "failed to grant items to winner"
	ErrContextFailedToCommitTx     = "failed to commit transaction"
)
