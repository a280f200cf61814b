package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/metrics"
	"github.com/osse101/GiftMarket_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus      event.Bus
	SSESubscriber *sse.Subscriber
}

// RegisterEventHandlers subscribes the metrics collector and the SSE bridge to the bus
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.SSESubscriber != nil {
		deps.SSESubscriber.Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}
	return nil
}
