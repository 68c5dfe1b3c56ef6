package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// Request parsing
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidID             = "Invalid id"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgUnauthenticated       = "Authentication required"

	// Game state cookie
	ErrMsgMissingGameState = "No game in progress"

	// Operation failures, logged with the underlying error
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgIssueTokenFailed   = "Failed to issue token"
	ErrMsgGetUserFailed      = "Failed to get user"
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgSellItemFailed     = "Failed to sell item"
	ErrMsgListCasesFailed    = "Failed to list cases"
	ErrMsgGetCaseFailed      = "Failed to get case"
	ErrMsgOpenCaseFailed     = "Failed to open case"
	ErrMsgBlackjackFailed    = "Blackjack action failed"
	ErrMsgSpinFailed         = "Failed to spin"
	ErrMsgCreateBattleFailed = "Failed to create battle"
	ErrMsgJoinBattleFailed   = "Failed to join battle"
	ErrMsgBotBattleFailed    = "Failed to start bot battle"
	ErrMsgGetBattleFailed    = "Failed to get battle"
	ErrMsgListBattlesFailed  = "Failed to list battles"
	ErrMsgStreamBattleFailed = "Failed to open battle stream"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgNotEnoughMoneyError = "Not enough money"
	ErrMsgInvalidStateError   = "That game is no longer in play"
	ErrMsgInvalidActionError  = "That move is not allowed right now"
	ErrMsgUsernameTakenError  = "Username already taken"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgCaseNotFoundError   = "Case not found"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgBattleNotFoundError = "Battle not found"
	ErrMsgNotFoundError       = "Resource not found."
)

// Log messages
const (
	LogMsgTamperedState   = "Rejected tampered game state"
	LogMsgServiceError    = "Request failed"
	LogMsgUserRegistered  = "User registered"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
)

// Game state cookie
const (
	// GameStateCookie carries the signed blackjack state between requests
	GameStateCookie = "bj_state"
	// GameStateCookiePath scopes the cookie to the blackjack routes
	GameStateCookiePath = "/api/v1/blackjack"
)
