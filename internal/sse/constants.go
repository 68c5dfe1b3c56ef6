package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to WebSocket connections
	WriteTimeout = 10 * time.Second

	// PongTimeout is how long a WebSocket peer may stay silent before it is dropped
	PongTimeout = 60 * time.Second

	// MaxInboundMessageSize caps frames read from WebSocket peers; the stream is server-to-client only
	MaxInboundMessageSize = 512
)

// Topics
const (
	// LobbyTopic receives every battle created and finished
	LobbyTopic = "lobby"

	battleTopicPrefix = "battle:"
)

// Event types
const (
	// EventTypeBattleCreated is sent to the lobby when a battle opens
	EventTypeBattleCreated = "battle.created"

	// EventTypeBattleFinished is sent to the battle topic and the lobby when a battle resolves
	EventTypeBattleFinished = "battle.finished"

	// EventTypeConnected is the first event on every stream and carries the current snapshot
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting stream event"
	LogMsgEventDropped       = "Broadcast buffer full, dropping event"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgMissingBattleID    = "Battle event without battle id"
	LogMsgSubscriberReady    = "Stream subscriber registered for event types"
)
