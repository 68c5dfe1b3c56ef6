package economy

// ==================== Error Messages ====================

// Database operation error messages
const (
	ErrMsgGetBalanceFailed        = "failed to get balance: %w"
	ErrMsgListInventoryFailed     = "failed to list inventory: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgTakeItemFailed          = "failed to take inventory item %s: %w"
	ErrMsgCreditFailed            = "failed to credit sale value: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// ==================== Log Messages ====================

// Service operation log messages
const (
	LogMsgSellItemCalled = "SellItem called"
	LogMsgItemSold       = "Item sold"
)
