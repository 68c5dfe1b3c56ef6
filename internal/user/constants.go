package user

import "time"

// Username limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
)

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgRegisterCalled     = "Register called"
	LogMsgUserRegistered     = "User registered"
	LogMsgBotUserCreated     = "Bot user created"
	LogMsgCacheInvalidated   = "User cache invalidated"
	LogErrFailedToCreateUser = "Failed to create user"
)

// Error contexts
const (
	ErrContextFailedToCreateUser = "failed to create user"
	ErrContextFailedToGetUser    = "failed to get user"
	ErrContextFailedToGetBot     = "failed to get bot user"
)
