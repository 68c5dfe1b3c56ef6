package config

import "time"

const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultServiceName = "teb-news-games"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
)

// Database defaults
const (
	DefaultDBName            = "tebnews"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)

// Game defaults
const (
	DefaultTokenTTL        = 24 * time.Hour
	DefaultStateTTL        = time.Hour
	DefaultStartingBalance = 1000
	DefaultBotUsername     = "teb-bot"
)

// Event fan-out defaults
const (
	DefaultRedisChannel   = "tebnews:events"
	DefaultDeadLetterPath = "logs/dead_letter.jsonl"
)
