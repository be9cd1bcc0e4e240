package infrastructure

import (
	"context"
)

// MessagePublisher publishes raw messages to a message bus
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}
