package models

import (
	"time"

	"github.com/google/uuid"
)

// DojoSubscription is the platform-fee subscription record for a dojo.
// Rows are created only by the setup flow and never deleted; webhook
// handlers and the confirm flow mutate them in place. At most one row per
// dojo may be in an active-family status at a time (enforced by a partial
// unique index on dojo_id).
type DojoSubscription struct {
	ID                       uuid.UUID     `json:"id" db:"id"`
	DojoID                   uuid.UUID     `json:"dojo_id" db:"dojo_id"`
	BillingStatus            BillingStatus `json:"billing_status" db:"billing_status"`
	StripeSubscriptionID     *string       `json:"stripe_subscription_id" db:"stripe_subscription_id"`
	StripeSetupIntentID      *string       `json:"stripe_setup_intent_id" db:"stripe_setup_intent_id"`
	StripeSubscriptionStatus *string       `json:"stripe_subscription_status" db:"stripe_subscription_status"`
	CreatedAt                time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at" db:"updated_at"`
}
