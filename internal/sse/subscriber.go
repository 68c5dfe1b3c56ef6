package sse

import (
	"context"
	"log/slog"

	"github.com/tebnews/TEBNews_Go/internal/event"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new stream subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for the battle lifecycle events
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.BattleCreated, s.handleBattleCreated)
	s.bus.Subscribe(event.BattleFinished, s.handleBattleFinished)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{string(event.BattleCreated), string(event.BattleFinished)})
}

func (s *Subscriber) handleBattleCreated(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(LobbyTopic, EventTypeBattleCreated, evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeBattleCreated, "topic", LobbyTopic)
	return nil
}

// handleBattleFinished fans out to the battle's own topic and to the lobby.
// Payloads are forwarded as-is: local events carry structs, relayed ones decoded maps.
func (s *Subscriber) handleBattleFinished(_ context.Context, evt event.Event) error {
	battleID, _ := evt.GetMetadataValue(event.MetadataKeyBattleID).(string)
	if battleID == "" {
		slog.Warn(LogMsgMissingBattleID, "event_type", evt.Type)
		return nil
	}

	topic := battleTopicPrefix + battleID
	s.hub.Broadcast(topic, EventTypeBattleFinished, evt.Payload)
	s.hub.Broadcast(LobbyTopic, EventTypeBattleFinished, evt.Payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeBattleFinished, "topic", topic)
	return nil
}
