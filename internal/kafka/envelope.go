package kafka

import (
	"encoding/json"
	"time"
)

// Envelope is the JSON body of every activity message. CorrelationID carries
// the request id of the form submission that produced it.
type Envelope struct {
	MessageID     string          `json:"messageId"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}
