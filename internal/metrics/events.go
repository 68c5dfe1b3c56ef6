package metrics

import (
	"context"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics.
// Events relayed from other instances are skipped; their origin already counted them.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	if evt.Remote {
		return nil
	}

	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.BlackjackFinished:
		err = recordBlackjack(evt)
	case event.CaseOpened:
		err = recordCaseOpened(evt)
	case event.BattleCreated:
		err = recordBattleCreated(evt)
	case event.BattleFinished:
		err = recordBattleFinished(evt)
	case event.SlotsCompleted:
		err = recordSlots(evt)
	case event.ItemSold:
		err = recordItemSold(evt)
	}
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordBlackjack(evt event.Event) error {
	p, err := event.DecodePayload[domain.BlackjackFinishedPayload](evt.Payload)
	if err != nil {
		return err
	}
	GamesPlayed.WithLabelValues(GameBlackjack, string(p.Outcome)).Inc()
	CurrencyWagered.WithLabelValues(GameBlackjack).Add(float64(p.Bet))
	CurrencyPaidOut.WithLabelValues(GameBlackjack).Add(float64(p.Payout))
	return nil
}

func recordCaseOpened(evt event.Event) error {
	p, err := event.DecodePayload[domain.CaseOpenedPayload](evt.Payload)
	if err != nil {
		return err
	}
	outcome := OutcomeKeep
	if p.QuickSell {
		outcome = OutcomeQuickSell
		CurrencyPaidOut.WithLabelValues(GameCase).Add(float64(p.Value))
	}
	GamesPlayed.WithLabelValues(GameCase, outcome).Inc()
	CasesOpened.WithLabelValues(string(p.Rarity)).Inc()
	CurrencyWagered.WithLabelValues(GameCase).Add(float64(p.Price))
	return nil
}

func recordBattleCreated(evt event.Event) error {
	p, err := event.DecodePayload[domain.BattleCreatedPayload](evt.Payload)
	if err != nil {
		return err
	}
	BattlesCreated.Inc()
	CurrencyWagered.WithLabelValues(GameBattle).Add(float64(p.PricePerRound) * float64(p.RoundCount))
	return nil
}

func recordBattleFinished(evt event.Event) error {
	p, err := event.DecodePayload[domain.BattleFinishedPayload](evt.Payload)
	if err != nil {
		return err
	}
	mode := ModePlayer
	if p.IsBot {
		mode = ModeBot
	}
	BattlesFinished.WithLabelValues(mode).Inc()
	GamesPlayed.WithLabelValues(GameBattle, mode).Inc()
	// The winner takes every drawn item
	CurrencyPaidOut.WithLabelValues(GameBattle).Add(float64(p.CreatorTotal + p.JoinerTotal))
	return nil
}

func recordSlots(evt event.Event) error {
	p, err := event.DecodePayload[domain.SlotsCompletedPayload](evt.Payload)
	if err != nil {
		return err
	}
	outcome := OutcomeLoss
	if p.IsWin {
		outcome = OutcomeWin
	}
	GamesPlayed.WithLabelValues(GameSlots, outcome).Inc()
	CurrencyWagered.WithLabelValues(GameSlots).Add(float64(p.BetAmount))
	CurrencyPaidOut.WithLabelValues(GameSlots).Add(float64(p.PayoutAmount))
	return nil
}

func recordItemSold(evt event.Event) error {
	p, err := event.DecodePayload[domain.ItemSoldPayload](evt.Payload)
	if err != nil {
		return err
	}
	ItemsSold.Inc()
	CurrencyPaidOut.WithLabelValues(GameCase).Add(float64(p.Value))
	return nil
}
