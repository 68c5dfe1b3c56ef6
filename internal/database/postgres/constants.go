package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToGetUserByUsername = "failed to get user by username"
)

// Error Messages - Wallet Operations
const (
	ErrMsgFailedToGetBalance    = "failed to get balance"
	ErrMsgFailedToDebit         = "failed to debit balance"
	ErrMsgFailedToCredit        = "failed to credit balance"
	ErrMsgFailedToListInventory = "failed to list inventory"
	ErrMsgFailedToGrantItems    = "failed to grant items"
	ErrMsgFailedToTakeItem      = "failed to take inventory item"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToListCases = "failed to list cases"
	ErrMsgFailedToGetCase   = "failed to get case"
	ErrMsgFailedToGetItems  = "failed to get case items"
	ErrMsgFailedToScanItem  = "failed to scan item"
)

// Error Messages - Battle Operations
const (
	ErrMsgFailedToInsertBattle = "failed to insert battle"
	ErrMsgFailedToInsertRounds = "failed to insert battle rounds"
	ErrMsgFailedToGetBattle    = "failed to get battle"
	ErrMsgFailedToGetRounds    = "failed to get battle rounds"
	ErrMsgFailedToListBattles  = "failed to list waiting battles"
	ErrMsgFailedToFinishBattle = "failed to finish battle"
	ErrMsgFailedToUpdateRounds = "failed to update battle rounds"
)
