package events

import (
	"encoding/json"
	"time"
)

// Envelope is the wire form every published payload travels in, both on
// the broker and down to websocket clients.
type Envelope struct {
	Destination string          `json:"destination"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload for the given destination.
func NewEnvelope(destination string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Destination: destination,
		OccurredAt:  time.Now().UTC(),
		Payload:     raw,
	}, nil
}
