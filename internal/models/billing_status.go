package models

// BillingStatus is the local subscription state machine. It is kept in
// sync with the raw Stripe subscription status via the orchestrator's
// mapping function; the raw value is stored alongside for debugging.
type BillingStatus string

const (
	BillingStatusSetupIntentCreated    BillingStatus = "setup_intent_created"
	BillingStatusPaymentMethodAttached BillingStatus = "payment_method_attached"
	BillingStatusTrialing              BillingStatus = "trialing"
	BillingStatusActive                BillingStatus = "active"
	BillingStatusPastDue               BillingStatus = "past_due"
	BillingStatusCancelled             BillingStatus = "cancelled"
)

// IsActiveFamily reports whether the status entitles the subscriber to
// service. PastDue is included: access is only revoked on cancellation.
func (s BillingStatus) IsActiveFamily() bool {
	switch s {
	case BillingStatusTrialing, BillingStatusActive, BillingStatusPastDue:
		return true
	}
	return false
}

// DojoStatus is the user-facing status of a dojo, derived from the
// billing status of its platform subscription.
type DojoStatus string

const (
	DojoStatusRegistered           DojoStatus = "registered"
	DojoStatusOnboardingIncomplete DojoStatus = "onboarding_incomplete"
	DojoStatusTrialing             DojoStatus = "trialing"
	DojoStatusActive               DojoStatus = "active"
	DojoStatusPastDue              DojoStatus = "past_due"
	DojoStatusBlocked              DojoStatus = "blocked"
)
