package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassSubscription is a recurring per-student-per-class subscription.
// Created only by the checkout flow; webhook handlers mutate it keyed on
// the Stripe subscription id. EndedAt is set exactly once, on
// cancellation.
type ClassSubscription struct {
	ID                   uuid.UUID     `json:"id" db:"id"`
	StudentID            uuid.UUID     `json:"student_id" db:"student_id"`
	ClassID              uuid.UUID     `json:"class_id" db:"class_id"`
	StripeCustomerID     string        `json:"stripe_customer_id" db:"stripe_customer_id"`
	StripeSubscriptionID string        `json:"stripe_subscription_id" db:"stripe_subscription_id"`
	Status               BillingStatus `json:"status" db:"status"`
	CreatedAt            time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at" db:"updated_at"`
	EndedAt              *time.Time    `json:"ended_at" db:"ended_at"`
}
