package impl_journal

import (
	"context"
	"errors"
	"slices"
	"sync"

	port_persistence "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/persistence"
)

var ErrDuplicateMessage = errors.New("journal: duplicate message id")

// MemoryOutbox keeps pending messages in insertion order for the lifetime of
// the process.
type MemoryOutbox struct {
	mu      sync.Mutex
	pending []port_persistence.OutboxMessage
}

var _ port_persistence.OutboxRepository = (*MemoryOutbox)(nil)

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

func (o *MemoryOutbox) Enqueue(_ context.Context, msg port_persistence.OutboxMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, m := range o.pending {
		if m.MessageID == msg.MessageID {
			return ErrDuplicateMessage
		}
	}
	msg.Payload = slices.Clone(msg.Payload)
	o.pending = append(o.pending, msg)
	return nil
}

func (o *MemoryOutbox) DequeueBatch(_ context.Context, limit int) ([]port_persistence.OutboxMessage, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if limit <= 0 || limit > len(o.pending) {
		limit = len(o.pending)
	}
	return slices.Clone(o.pending[:limit]), nil
}

// MarkPublished is a no-op for unknown ids.
func (o *MemoryOutbox) MarkPublished(_ context.Context, messageID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = slices.DeleteFunc(o.pending, func(m port_persistence.OutboxMessage) bool {
		return m.MessageID == messageID
	})
	return nil
}

func (o *MemoryOutbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}
