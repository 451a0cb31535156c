package models

import (
	"time"

	"github.com/google/uuid"
)

type Dojo struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	OwnerID          uuid.UUID  `json:"owner_id" db:"owner_id"`
	Name             string     `json:"name" db:"name"`
	Status           DojoStatus `json:"status" db:"status"`
	StripeCustomerID *string    `json:"stripe_customer_id" db:"stripe_customer_id"`
	HasUsedTrial     bool       `json:"has_used_trial" db:"has_used_trial"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}
