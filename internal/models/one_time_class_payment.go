package models

import (
	"time"

	"github.com/google/uuid"
)

// OneTimeClassPayment records a single charge for a single-occurrence
// class. Immutable after insert.
type OneTimeClassPayment struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	StudentID             uuid.UUID `json:"student_id" db:"student_id"`
	ClassID               uuid.UUID `json:"class_id" db:"class_id"`
	StripePaymentIntentID string    `json:"stripe_payment_intent_id" db:"stripe_payment_intent_id"`
	Amount                int64     `json:"amount" db:"amount"` // minor currency units
	Status                string    `json:"status" db:"status"`
	PaidAt                time.Time `json:"paid_at" db:"paid_at"`
}
