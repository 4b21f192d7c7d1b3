package port_messaging

import (
	"context"
)

// Publisher delivers one encoded domain event. Headers carry the event type,
// the message id and the trace context.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}
