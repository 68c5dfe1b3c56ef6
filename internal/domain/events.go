package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.sold")
const (
	// EventTypeBlackjackFinished is published when a blackjack hand resolves
	EventTypeBlackjackFinished = "blackjack.finished"

	// EventTypeCaseOpened is published after a case opening commits
	EventTypeCaseOpened = "case.opened"

	// EventTypeBattleCreated is published when a battle starts waiting for a joiner
	EventTypeBattleCreated = "battle.created"

	// EventTypeBattleFinished is published when a battle resolves
	EventTypeBattleFinished = "battle.finished"

	// EventTypeSlotsCompleted is published after every spin
	EventTypeSlotsCompleted = "slots.completed"

	// EventTypeItemSold is published when an inventory item is sold back
	EventTypeItemSold = "item.sold"
)
