package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata carries routing keys such as the battle id
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`

	// Remote is set on events relayed from another instance.
	Remote bool `json:"-"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Game event types
const (
	BlackjackFinished Type = domain.EventTypeBlackjackFinished
	CaseOpened        Type = domain.EventTypeCaseOpened
	BattleCreated     Type = domain.EventTypeBattleCreated
	BattleFinished    Type = domain.EventTypeBattleFinished
	SlotsCompleted    Type = domain.EventTypeSlotsCompleted
	ItemSold          Type = domain.EventTypeItemSold
)

// AllTypes lists every event type published by the game services.
var AllTypes = []Type{BlackjackFinished, CaseOpened, BattleCreated, BattleFinished, SlotsCompleted, ItemSold}

// Type-safe event constructors

// NewBlackjackFinishedEvent creates a blackjack.finished event
func NewBlackjackFinishedEvent(userID string, bet, payout int64, outcome domain.GameOutcome) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BlackjackFinished,
		Payload: domain.BlackjackFinishedPayload{
			UserID:    userID,
			Bet:       bet,
			Payout:    payout,
			Outcome:   outcome,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeyUserID: userID},
	}
}

// NewCaseOpenedEvent creates a case.opened event
func NewCaseOpenedEvent(payload domain.CaseOpenedPayload) Event {
	payload.Timestamp = time.Now().Unix()
	return Event{
		Version:  EventSchemaVersion,
		Type:     CaseOpened,
		Payload:  payload,
		Metadata: Metadata{MetadataKeyUserID: payload.UserID},
	}
}

// NewBattleCreatedEvent creates a battle.created event
func NewBattleCreatedEvent(b *domain.Battle) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleCreated,
		Payload: domain.BattleCreatedPayload{
			BattleID:      b.ID.String(),
			CreatorID:     b.CreatorID.String(),
			CaseID:        b.CaseID,
			RoundCount:    b.RoundCount,
			PricePerRound: b.PricePerRound,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: Metadata{
			MetadataKeyBattleID: b.ID.String(),
			MetadataKeyUserID:   b.CreatorID.String(),
		},
	}
}

// NewBattleFinishedEvent creates a battle.finished event
func NewBattleFinishedEvent(result *domain.BattleResult) Event {
	b := result.Battle
	payload := domain.BattleFinishedPayload{
		BattleID:     b.ID.String(),
		CreatorID:    b.CreatorID.String(),
		CreatorTotal: result.CreatorTotal,
		JoinerTotal:  result.JoinerTotal,
		TieBreak:     result.TieBreak,
		IsBot:        b.IsBot,
		Rounds:       b.Rounds,
		Timestamp:    time.Now().Unix(),
	}
	if b.JoinerID != nil {
		payload.JoinerID = b.JoinerID.String()
	}
	if b.WinnerID != nil {
		payload.WinnerID = b.WinnerID.String()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     BattleFinished,
		Payload:  payload,
		Metadata: Metadata{MetadataKeyBattleID: payload.BattleID},
	}
}

// NewSlotsCompletedEvent creates a slots.completed event
func NewSlotsCompletedEvent(result *domain.SlotsResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SlotsCompleted,
		Payload: domain.SlotsCompletedPayload{
			UserID:           result.UserID.String(),
			BetAmount:        result.BetAmount,
			Reel1:            result.Reel1,
			Reel2:            result.Reel2,
			Reel3:            result.Reel3,
			PayoutAmount:     result.PayoutAmount,
			PayoutMultiplier: result.PayoutMultiplier,
			TriggerType:      result.TriggerType,
			IsWin:            result.IsWin,
			IsNearMiss:       result.IsNearMiss,
		},
		Metadata: Metadata{MetadataKeyUserID: result.UserID.String()},
	}
}

// NewItemSoldEvent creates an item.sold event
func NewItemSoldEvent(item *domain.InventoryItem) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemSold,
		Payload: domain.ItemSoldPayload{
			UserID:          item.UserID.String(),
			InventoryItemID: item.ID.String(),
			ItemName:        item.Item.Name,
			Value:           item.Item.Value,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeyUserID: item.UserID.String()},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is what game services depend on: fire and forget with retries behind it.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously in subscription order.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
