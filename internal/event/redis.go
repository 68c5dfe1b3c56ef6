package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tebnews/TEBNews_Go/internal/logger"
)

// envelope is the wire form of an event on the redis channel.
type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// RedisBus dispatches events locally and relays them to other instances over a
// redis pub/sub channel. Relayed events are dispatched locally with Remote set
// and are never relayed again.
type RedisBus struct {
	local   Bus
	client  redis.UniversalClient
	channel string
	origin  string

	pubsub *redis.PubSub
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRedisBus wraps local. Call Start to receive events from other instances.
func NewRedisBus(local Bus, client redis.UniversalClient, channel string) *RedisBus {
	return &RedisBus{
		local:   local,
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
	}
}

// Publish dispatches to local handlers, then relays the event unless it came from redis.
func (b *RedisBus) Publish(ctx context.Context, event Event) error {
	localErr := b.local.Publish(ctx, event)
	if event.Remote {
		return localErr
	}

	data, err := json.Marshal(envelope{Origin: b.origin, Event: event})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRedisRelayFailed, "event_type", event.Type, "error", err)
		return fmt.Errorf("failed to relay event: %w", err)
	}
	return localErr
}

// Subscribe delegates to the local bus
func (b *RedisBus) Subscribe(eventType Type, handler Handler) {
	b.local.Subscribe(eventType, handler)
}

// Start subscribes to the channel and dispatches relayed events until Shutdown.
func (b *RedisBus) Start(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	logger.Info(LogMsgRedisSubscribed, "channel", b.channel)

	b.mu.Lock()
	b.pubsub = pubsub
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range pubsub.Channel() {
			b.dispatch(msg.Payload)
		}
	}()
	return nil
}

func (b *RedisBus) dispatch(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		logger.Warn(LogMsgRedisDecodeFailed, "error", err)
		return
	}
	if env.Origin == b.origin {
		return
	}

	env.Event.Remote = true
	if err := b.local.Publish(context.Background(), env.Event); err != nil {
		logger.Warn(LogMsgRedisDispatchFailed, "event_type", env.Event.Type, "error", err)
	}
}

// Shutdown closes the subscription and waits for the dispatch loop to exit.
func (b *RedisBus) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	pubsub := b.pubsub
	b.pubsub = nil
	b.mu.Unlock()

	if pubsub != nil {
		if err := pubsub.Close(); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
