// Package impl_activity journals the transfer controller's domain events
// through an outbox so a slow or failing publisher never blocks the flow.
package impl_activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	port_messaging "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/messaging"
	port_persistence "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/persistence"
	port_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	Topic        = "transfer-client.events"
	defaultBatch = 50

	headerEventType   = "event-type"
	headerMessageID   = "message-id"
	headerTraceparent = "traceparent"
)

type EventSource interface {
	PullEvents() []domain_transfer.DomainEvent
}

type envelope struct {
	Type        string    `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Data        any       `json:"data"`
}

type Relay struct {
	source    EventSource
	outbox    port_persistence.OutboxRepository
	publisher port_messaging.Publisher
	ids       port_platform.IDGenerator
	logger    *slog.Logger
}

func NewRelay(
	source EventSource,
	outbox port_persistence.OutboxRepository,
	publisher port_messaging.Publisher,
	ids port_platform.IDGenerator,
	logger *slog.Logger,
) *Relay {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Relay{source: source, outbox: outbox, publisher: publisher, ids: ids, logger: logger}
}

// Collect drains the source into the outbox. Events that fail to enqueue are
// dropped and logged.
func (r *Relay) Collect(ctx context.Context) int {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	n := 0
	for _, ev := range r.source.PullEvents() {
		msg, err := r.encode(ev, carrier.Get(headerTraceparent))
		if err == nil {
			err = r.outbox.Enqueue(ctx, msg)
		}
		if err != nil {
			telemetry.JournalEventsTotal.WithLabelValues("enqueue", "error").Inc()
			r.logger.WarnContext(ctx, "dropping domain event",
				slog.String("event", ev.EventName()),
				slog.Any("error", err),
			)
			continue
		}
		telemetry.JournalEventsTotal.WithLabelValues("enqueue", "ok").Inc()
		n++
	}
	return n
}

func (r *Relay) encode(ev domain_transfer.DomainEvent, traceparent string) (port_persistence.OutboxMessage, error) {
	payload, err := json.Marshal(envelope{
		Type:        ev.EventName(),
		AggregateID: ev.AggregateID().String(),
		OccurredAt:  ev.OccurredAt(),
		Data:        ev,
	})
	if err != nil {
		return port_persistence.OutboxMessage{}, fmt.Errorf("encode %s: %w", ev.EventName(), err)
	}
	return port_persistence.OutboxMessage{
		MessageID:   r.ids.NewUUID().String(),
		EventType:   ev.EventName(),
		AggregateID: ev.AggregateID().String(),
		Traceparent: traceparent,
		OccurredAt:  ev.OccurredAt(),
		Payload:     payload,
	}, nil
}

// Flush publishes up to limit queued messages in order. It stops at the first
// publish failure and leaves that message and the rest queued.
func (r *Relay) Flush(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultBatch
	}
	batch, err := r.outbox.DequeueBatch(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("dequeue: %w", err)
	}

	for i, msg := range batch {
		headers := map[string]string{
			headerEventType: msg.EventType,
			headerMessageID: msg.MessageID,
		}
		if msg.Traceparent != "" {
			headers[headerTraceparent] = msg.Traceparent
		}

		if err := r.publisher.Publish(ctx, Topic, msg.AggregateID, msg.Payload, headers); err != nil {
			telemetry.JournalEventsTotal.WithLabelValues("publish", "error").Inc()
			return i, fmt.Errorf("publish %s: %w", msg.MessageID, err)
		}
		if err := r.outbox.MarkPublished(ctx, msg.MessageID); err != nil {
			return i, fmt.Errorf("mark published %s: %w", msg.MessageID, err)
		}
		telemetry.JournalEventsTotal.WithLabelValues("publish", "ok").Inc()
	}
	return len(batch), nil
}

// Sync collects and flushes; publish errors are logged, not returned.
func (r *Relay) Sync(ctx context.Context) {
	r.Collect(ctx)
	if _, err := r.Flush(ctx, defaultBatch); err != nil {
		r.logger.WarnContext(ctx, "activity journal flush failed", slog.Any("error", err))
	}
}
