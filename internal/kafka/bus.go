package kafka

import "context"

// Bus publishes console activity messages. Payloads are wrapped in an Envelope.
type Bus interface {
	Publish(ctx context.Context, topic string, msgType string, payload any) error
}
