package impl_journal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	port_messaging "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/messaging"
)

// LinePublisher appends one JSON document per event to w.
type LinePublisher struct {
	mu sync.Mutex
	w  io.Writer
}

var _ port_messaging.Publisher = (*LinePublisher)(nil)

func NewLinePublisher(w io.Writer) *LinePublisher {
	return &LinePublisher{w: w}
}

type line struct {
	Topic   string            `json:"topic"`
	Key     string            `json:"key"`
	Headers map[string]string `json:"headers,omitempty"`
	Event   json.RawMessage   `json:"event"`
}

func (p *LinePublisher) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if !json.Valid(payload) {
		return fmt.Errorf("journal: payload for %s is not JSON", key)
	}
	b, err := json.Marshal(line{Topic: topic, Key: key, Headers: headers, Event: payload})
	if err != nil {
		return err
	}
	b = append(b, '\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.w.Write(b); err != nil {
		return fmt.Errorf("journal: write: %w", err)
	}
	return nil
}
