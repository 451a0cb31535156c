package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a billing state transition for a dojo.
type AuditLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DojoID     uuid.UUID `json:"dojo_id" db:"dojo_id"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Action     string    `json:"action" db:"action"`
	Detail     *string   `json:"detail" db:"detail"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
