package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"dojohub/internal/common"
	"dojohub/internal/models"
	"dojohub/internal/repositories"

	stripe "github.com/stripe/stripe-go/v82"
)

// WebhookService consumes verified gateway events. Delivery is
// at-least-once and unordered, so every event is deduplicated by its
// external id and each handling commits atomically with the dedupe row:
// either the event's effects and its record land together, or neither
// does and redelivery retries the whole thing.
type WebhookService interface {
	ProcessEvent(ctx context.Context, event stripe.Event) error
}

type webhookService struct {
	tx        repositories.TxManager
	eventRepo repositories.WebhookEventRepository
	billing   BillingService
}

func NewWebhookService(tx repositories.TxManager, eventRepo repositories.WebhookEventRepository, billing BillingService) WebhookService {
	return &webhookService{tx: tx, eventRepo: eventRepo, billing: billing}
}

func (s *webhookService) ProcessEvent(ctx context.Context, event stripe.Event) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		seen, err := s.eventRepo.Exists(ctx, event.ID)
		if err != nil {
			return err
		}
		if seen {
			log.Printf("Skipping already processed webhook event %s (%s)", event.ID, event.Type)
			return nil
		}

		handled, err := s.dispatch(ctx, event)
		if err != nil {
			return err
		}
		if !handled {
			// Unroutable types are acknowledged but never marked
			// processed; the dedupe store only records acted-on events.
			log.Printf("Ignoring unhandled webhook event type %s", event.Type)
			return nil
		}

		return s.eventRepo.Create(ctx, &models.WebhookEvent{
			ID:          event.ID,
			Type:        string(event.Type),
			ProcessedAt: time.Now(),
		})
	})
}

func (s *webhookService) dispatch(ctx context.Context, event stripe.Event) (bool, error) {
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		sub, err := parseSubscription(event)
		if err != nil {
			return false, err
		}
		return true, s.routeSubscription(ctx, sub, s.billing.SyncDojoSubscription, s.billing.SyncClassSubscription)

	case "customer.subscription.deleted":
		sub, err := parseSubscription(event)
		if err != nil {
			return false, err
		}
		return true, s.routeSubscription(ctx, sub, s.billing.MarkDojoSubCancelled, s.billing.MarkClassSubCancelled)

	case "invoice.paid":
		return true, s.routeInvoice(ctx, event, s.billing.MarkDojoSubActive, s.billing.MarkClassSubActive)

	case "invoice.payment_failed":
		return true, s.routeInvoice(ctx, event, s.billing.MarkDojoSubPastDue, s.billing.MarkClassSubPastDue)

	case "setup_intent.succeeded":
		var intent stripe.SetupIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return false, common.NewValidationError("event", "malformed setup intent payload")
		}
		md, err := ParseObjectMetadata(intent.Metadata)
		if err != nil {
			return false, err
		}
		if md.Kind != ObjectKindDojoSub {
			return false, common.NewValidationError(metadataKeyType, fmt.Sprintf("unexpected discriminant %q on setup intent", md.Kind))
		}
		return true, s.billing.MarkDojoPaymentMethodAttached(ctx, &intent)

	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return false, common.NewValidationError("event", "malformed payment intent payload")
		}
		return true, s.billing.CreateClassSubscriptionsFromPaymentIntent(ctx, &intent)

	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return false, common.NewValidationError("event", "malformed checkout session payload")
		}
		return true, s.billing.SettleCheckoutSession(ctx, &session)

	default:
		return false, nil
	}
}

// routeSubscription routes a subscription object to the dojo or class
// handler based on the metadata discriminant. A subscription carrying an
// unknown or absent discriminant is rejected so redelivery surfaces it.
func (s *webhookService) routeSubscription(ctx context.Context, sub *stripe.Subscription, dojoFn, classFn func(context.Context, *stripe.Subscription) error) error {
	md, err := ParseObjectMetadata(sub.Metadata)
	if err != nil {
		return err
	}
	switch md.Kind {
	case ObjectKindDojoSub:
		return dojoFn(ctx, sub)
	case ObjectKindClassSub:
		return classFn(ctx, sub)
	default:
		return common.NewValidationError(metadataKeyType, fmt.Sprintf("unexpected discriminant %q on subscription", md.Kind))
	}
}

// routeInvoice resolves the subscription an invoice bills for and routes
// by its metadata discriminant. An invoice without subscription details
// cannot be acted on, so it is rejected rather than marked processed;
// redelivery keeps surfacing it.
func (s *webhookService) routeInvoice(ctx context.Context, event stripe.Event, dojoFn, classFn func(context.Context, string) error) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return common.NewValidationError("event", "malformed invoice payload")
	}

	if inv.Parent == nil || inv.Parent.SubscriptionDetails == nil || inv.Parent.SubscriptionDetails.Subscription == nil {
		return common.NewValidationError("invoice", "missing subscription details")
	}
	details := inv.Parent.SubscriptionDetails
	subID := details.Subscription.ID
	if subID == "" {
		return common.NewValidationError("invoice", "subscription details missing subscription id")
	}

	md, err := ParseObjectMetadata(details.Metadata)
	if err != nil {
		return err
	}
	switch md.Kind {
	case ObjectKindDojoSub:
		return dojoFn(ctx, subID)
	case ObjectKindClassSub:
		return classFn(ctx, subID)
	default:
		return common.NewValidationError(metadataKeyType, fmt.Sprintf("unexpected discriminant %q on invoice", md.Kind))
	}
}

func parseSubscription(event stripe.Event) (*stripe.Subscription, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, common.NewValidationError("event", "malformed subscription payload")
	}
	return &sub, nil
}
