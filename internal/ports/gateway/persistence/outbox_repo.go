package port_persistence

import (
	"context"
	"time"
)

type OutboxMessage struct {
	MessageID   string
	EventType   string
	AggregateID string
	Traceparent string
	OccurredAt  time.Time
	Payload     []byte
}

// OutboxRepository holds encoded events until a publisher acknowledges them.
// DequeueBatch does not remove messages; MarkPublished does.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) error
	DequeueBatch(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, messageID string) error
}
