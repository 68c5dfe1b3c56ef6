package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/metrics"
	"github.com/tebnews/TEBNews_Go/internal/sse"
	"github.com/tebnews/TEBNews_Go/internal/user"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus    event.Bus
	UserService user.Service
	Hub         *sse.Hub
}

// RegisterEventHandlers sets up all event subscribers:
// the metrics collector, user cache invalidation and the live stream bridge.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	user.RegisterCacheInvalidation(deps.EventBus, deps.UserService)
	slog.Info(LogMsgCacheInvalidationWired)

	sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	slog.Info(LogMsgStreamSubscriberWired)

	return nil
}
