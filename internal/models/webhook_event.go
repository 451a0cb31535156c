package models

import "time"

// WebhookEvent is the append-only dedupe record for inbound gateway
// events. The id is the external event id; existence of a row is the
// sole idempotency signal for that event.
type WebhookEvent struct {
	ID          string    `json:"id" db:"id"`
	Type        string    `json:"type" db:"type"`
	ProcessedAt time.Time `json:"processed_at" db:"processed_at"`
}
