package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
	"github.com/osse101/GiftMarket_Go/internal/session"
)

// Subscriber bridges the event bus and open mirrors to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for the ledger events clients care about
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.SagaPartiallyFailed, s.handlePartiallyFailed)
	s.bus.Subscribe(event.CompensationCompleted, s.handleCompensated)
	s.bus.Subscribe(event.DepositRequestCreated, s.handleDepositRequested)

	slog.Info(LogMsgSubscriberReady,
		"types", []string{
			string(event.SagaPartiallyFailed),
			string(event.CompensationCompleted),
			string(event.DepositRequestCreated),
		})
}

// WatchMirror forwards every change of the session's mirror to its identity's
// streams until the session is closed
func (s *Subscriber) WatchMirror(sess *session.Session) {
	if sess.Anonymous() {
		return
	}
	identity := sess.Identity
	done := sess.Done()

	sess.Mirror.OnChange(func(c mirror.Change) {
		select {
		case <-done:
			return
		default:
		}

		switch c.Kind {
		case mirror.ChangeUser:
			s.hub.Send(identity, EventTypeUserChanged, c.User)
		case mirror.ChangeItem:
			s.hub.Send(identity, EventTypeItemChanged, c.Item)
		case mirror.ChangeHistory:
			s.hub.Send(identity, EventTypeHistoryAdded, c.Transaction)
		}
	})
}

func (s *Subscriber) handlePartiallyFailed(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.SagaPartiallyFailedPayload](evt.Payload)
	if err != nil || p.UserID == 0 {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Send(p.UserID, EventTypeOperationPartial, p)
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeOperationPartial, "user_id", p.UserID, "steps", p.FailedSteps)
	return nil
}

func (s *Subscriber) handleCompensated(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.CompensationCompletedPayload](evt.Payload)
	if err != nil || p.UserID == 0 {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Send(p.UserID, EventTypeCompensated, p)
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeCompensated, "user_id", p.UserID, "success", p.Success)
	return nil
}

func (s *Subscriber) handleDepositRequested(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.DepositRequestCreatedPayload](evt.Payload)
	if err != nil || p.UserID == 0 {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Send(p.UserID, EventTypeDepositRequested, p)
	return nil
}
