package outbox

import (
	"encoding/json"
	"time"
)

// ActorRef records who caused the event, when the request was
// authenticated. System-initiated changes carry no actor.
type ActorRef struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
}

// PayloadEnvelope is the versioned JSON stored in outbox_events.payload and
// published verbatim to Pub/Sub. Consumers key off Version before decoding
// Data.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}
