package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotFound          = "not found"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidState      = "invalid state"
	ErrMsgInvalidAction     = "invalid action"
	ErrMsgEmptyPool         = "item pool is empty"
	ErrMsgTamperedState     = "signature verification failed"
	ErrMsgUsernameTaken     = "username already taken"
	ErrMsgInvalidInput      = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound          = errors.New(ErrMsgNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidState      = errors.New(ErrMsgInvalidState)
	ErrInvalidAction     = errors.New(ErrMsgInvalidAction)
	ErrEmptyPool         = errors.New(ErrMsgEmptyPool)
	ErrUsernameTaken     = errors.New(ErrMsgUsernameTaken)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	// Callers see an invalid state; logs can still tell the two apart.
	ErrTamperedState = fmt.Errorf("%w: %s", ErrInvalidState, ErrMsgTamperedState)

	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrCaseNotFound   = fmt.Errorf("case %w", ErrNotFound)
	ErrItemNotFound   = fmt.Errorf("item %w", ErrNotFound)
	ErrBattleNotFound = fmt.Errorf("battle %w", ErrNotFound)
)
