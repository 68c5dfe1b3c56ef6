package caseopen

import "time"

// Catalog cache sizing. Cases are seeded data, so entries live long.
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgOpenCaseCalled = "OpenCase called"
	LogMsgCaseOpened     = "Case opened"
	LogMsgEmptyPool      = "Case has no items to sample"
)

// Error contexts
const (
	ErrContextFailedToGetCase   = "failed to get case"
	ErrContextFailedToListCases = "failed to list cases"
	ErrContextFailedToSample    = "failed to sample item"
	ErrContextFailedToBeginTx   = "failed to begin transaction"
	ErrContextFailedToDebit     = "failed to debit case price"
	ErrContextFailedToCredit    = "failed to credit quick sell value"
	ErrContextFailedToGrantItem = "failed to grant item"
	ErrContextFailedToCommitTx  = "failed to commit transaction"
)
