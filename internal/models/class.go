package models

import (
	"time"

	"github.com/google/uuid"
)

// Class recurrence values.
const (
	ClassRecurrenceWeekly  = "weekly"
	ClassRecurrenceOneTime = "one_time"
)

type Class struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DojoID        uuid.UUID `json:"dojo_id" db:"dojo_id"`
	Name          string    `json:"name" db:"name"`
	Recurrence    string    `json:"recurrence" db:"recurrence"`
	PriceAmount   int64     `json:"price_amount" db:"price_amount"` // minor currency units
	Currency      string    `json:"currency" db:"currency"`
	StripePriceID *string   `json:"stripe_price_id" db:"stripe_price_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Recurs reports whether the class bills on a recurring schedule.
func (c *Class) Recurs() bool {
	return c.Recurrence == ClassRecurrenceWeekly
}
