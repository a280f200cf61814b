package metrics

import (
	"context"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all ledger events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

func operationStatus(partial bool) string {
	if partial {
		return StatusPartiallyFailed
	}
	return StatusCompleted
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.WalletDeposited:
		var p domain.WalletDepositedPayload
		if p, err = event.DecodePayload[domain.WalletDepositedPayload](evt.Payload); err == nil {
			Operations.WithLabelValues(OperationDeposit, operationStatus(p.LocalOnly)).Inc()
		}

	case event.ItemPurchased:
		var p domain.ItemPurchasedPayload
		if p, err = event.DecodePayload[domain.ItemPurchasedPayload](evt.Payload); err == nil {
			Operations.WithLabelValues(OperationPurchase, operationStatus(len(p.FailedSteps) > 0)).Inc()
		}

	case event.ListingCreated:
		Operations.WithLabelValues(OperationSell, StatusCompleted).Inc()

	case event.ItemPublished:
		Operations.WithLabelValues(OperationPublish, StatusCompleted).Inc()

	case event.DepositRequestCreated:
		Operations.WithLabelValues(OperationCardDeposit, StatusCompleted).Inc()

	case event.SagaPartiallyFailed:
		var p domain.SagaPartiallyFailedPayload
		if p, err = event.DecodePayload[domain.SagaPartiallyFailedPayload](evt.Payload); err == nil {
			for _, step := range p.FailedSteps {
				RemoteFailures.WithLabelValues(step).Inc()
			}
		}

	case event.CompensationCompleted:
		var p domain.CompensationCompletedPayload
		if p, err = event.DecodePayload[domain.CompensationCompletedPayload](evt.Payload); err == nil {
			result := ResultFailure
			if p.Success {
				result = ResultSuccess
			}
			Compensations.WithLabelValues(result).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
