package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dojohub/internal/caching"
	"dojohub/internal/common"
	"dojohub/internal/models"
	"dojohub/internal/repositories"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
)

const priceCacheTTL = 12 * time.Hour

// EnrollmentStore is the narrow seam into class membership. Both methods
// are idempotent and must be called inside the caller's transaction so
// billing state and enrollment state commit together.
type EnrollmentStore interface {
	Activate(ctx context.Context, studentID, classID uuid.UUID) error
	Deactivate(ctx context.Context, studentID, classID uuid.UUID, revokedAt time.Time) error
}

// SetupResult is returned by the dojo billing setup flow.
type SetupResult struct {
	ClientSecret string `json:"client_secret"`
}

// CheckoutResult is returned by the class checkout flow.
type CheckoutResult struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// BillingService orchestrates dojo and class billing: the synchronous
// setup/confirm flow, checkout, and the webhook-driven reconciliation
// handlers. Every entry point runs in exactly one transaction. Webhook
// handlers never originate subscription rows; a missing local row for an
// inbound event is a hard error.
type BillingService interface {
	SetupDojoAdminBilling(ctx context.Context, dojoID, userID uuid.UUID) (*SetupResult, error)
	ConfirmDojoAdminBilling(ctx context.Context, userID uuid.UUID) error
	CreateClassCheckout(ctx context.Context, userID, classID uuid.UUID, childIDs []uuid.UUID) (*CheckoutResult, error)
	EnsureClassPrice(ctx context.Context, userID, classID uuid.UUID) (string, error)

	SyncDojoSubscription(ctx context.Context, remote *stripe.Subscription) error
	MarkDojoSubPastDue(ctx context.Context, stripeSubID string) error
	MarkDojoSubActive(ctx context.Context, stripeSubID string) error
	MarkDojoSubCancelled(ctx context.Context, remote *stripe.Subscription) error
	MarkDojoPaymentMethodAttached(ctx context.Context, intent *stripe.SetupIntent) error

	SyncClassSubscription(ctx context.Context, remote *stripe.Subscription) error
	MarkClassSubPastDue(ctx context.Context, stripeSubID string) error
	MarkClassSubActive(ctx context.Context, stripeSubID string) error
	MarkClassSubCancelled(ctx context.Context, remote *stripe.Subscription) error
	CreateClassSubscriptionsFromPaymentIntent(ctx context.Context, intent *stripe.PaymentIntent) error
	SettleCheckoutSession(ctx context.Context, session *stripe.CheckoutSession) error
}

type billingService struct {
	tx           repositories.TxManager
	dojoRepo     repositories.DojoRepository
	userRepo     repositories.UserRepository
	classRepo    repositories.ClassRepository
	dojoSubRepo  repositories.DojoSubscriptionRepository
	classSubRepo repositories.ClassSubscriptionRepository
	paymentRepo  repositories.OneTimeClassPaymentRepository
	auditRepo    repositories.AuditLogsRepository
	enrollments  EnrollmentStore
	stripeSvc    StripeService
	cacheSvc     caching.CacheService

	platformPriceID      string
	setupIntentFreshness time.Duration
}

// NewBillingService creates a new BillingService instance.
func NewBillingService(
	tx repositories.TxManager,
	dojoRepo repositories.DojoRepository,
	userRepo repositories.UserRepository,
	classRepo repositories.ClassRepository,
	dojoSubRepo repositories.DojoSubscriptionRepository,
	classSubRepo repositories.ClassSubscriptionRepository,
	paymentRepo repositories.OneTimeClassPaymentRepository,
	auditRepo repositories.AuditLogsRepository,
	enrollments EnrollmentStore,
	stripeSvc StripeService,
	cacheSvc caching.CacheService,
	platformPriceID string,
	setupIntentFreshness time.Duration,
) BillingService {
	return &billingService{
		tx:                   tx,
		dojoRepo:             dojoRepo,
		userRepo:             userRepo,
		classRepo:            classRepo,
		dojoSubRepo:          dojoSubRepo,
		classSubRepo:         classSubRepo,
		paymentRepo:          paymentRepo,
		auditRepo:            auditRepo,
		enrollments:          enrollments,
		stripeSvc:            stripeSvc,
		cacheSvc:             cacheSvc,
		platformPriceID:      platformPriceID,
		setupIntentFreshness: setupIntentFreshness,
	}
}

// SetupDojoAdminBilling starts (or resumes) payment method collection for
// a dojo's platform subscription. A still-fresh, uncanceled setup intent
// is reused so client polling cannot spawn duplicates; a stale or
// canceled one is replaced on the existing row rather than inserting a
// second SetupIntentCreated row.
func (s *billingService) SetupDojoAdminBilling(ctx context.Context, dojoID, userID uuid.UUID) (*SetupResult, error) {
	var result *SetupResult
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		dojo, err := s.dojoRepo.GetByID(ctx, dojoID)
		if err != nil {
			return err
		}
		if dojo.OwnerID != userID {
			return common.NewOwnershipError("dojo")
		}

		customerID, err := s.ensureDojoCustomer(ctx, dojo)
		if err != nil {
			return err
		}

		latest, err := s.dojoSubRepo.GetLatestByDojoID(ctx, dojo.ID)
		if err != nil && !common.IsNotFound(err) {
			return err
		}

		if latest != nil && latest.BillingStatus == models.BillingStatusSetupIntentCreated && latest.StripeSetupIntentID != nil {
			intent, err := s.stripeSvc.RetrieveSetupIntent(ctx, *latest.StripeSetupIntentID)
			if err != nil {
				return err
			}
			if intent.Status != stripe.SetupIntentStatusCanceled && time.Since(latest.UpdatedAt) < s.setupIntentFreshness {
				result = &SetupResult{ClientSecret: intent.ClientSecret}
				return nil
			}

			fresh, err := s.stripeSvc.CreateSetupIntent(ctx, customerID, dojoSubMetadata(dojo.ID))
			if err != nil {
				return err
			}
			latest.StripeSetupIntentID = &fresh.ID
			if err := s.dojoSubRepo.Update(ctx, latest); err != nil {
				return err
			}
			if err := s.setDojoStatus(ctx, dojo, models.DojoStatusOnboardingIncomplete); err != nil {
				return err
			}
			s.audit(ctx, dojo.ID, "dojo_subscription", latest.ID.String(), "setup_intent_replaced")
			result = &SetupResult{ClientSecret: fresh.ClientSecret}
			return nil
		}

		intent, err := s.stripeSvc.CreateSetupIntent(ctx, customerID, dojoSubMetadata(dojo.ID))
		if err != nil {
			return err
		}
		sub := &models.DojoSubscription{
			ID:                  uuid.New(),
			DojoID:              dojo.ID,
			BillingStatus:       models.BillingStatusSetupIntentCreated,
			StripeSetupIntentID: &intent.ID,
		}
		if err := s.dojoSubRepo.Create(ctx, sub); err != nil {
			return err
		}
		if err := s.setDojoStatus(ctx, dojo, models.DojoStatusOnboardingIncomplete); err != nil {
			return err
		}
		s.audit(ctx, dojo.ID, "dojo_subscription", sub.ID.String(), "setup_intent_created")
		result = &SetupResult{ClientSecret: intent.ClientSecret}
		return nil
	})
	return result, err
}

// ConfirmDojoAdminBilling exchanges a succeeded setup intent for the
// platform subscription. Safe under client retries twice over: the
// SetupIntentCreated state guard makes a repeat call a no-op, and the
// idempotency key derived from the local subscription id means even a
// raced duplicate cannot create a second remote subscription.
func (s *billingService) ConfirmDojoAdminBilling(ctx context.Context, userID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		dojo, err := s.dojoRepo.GetByOwnerID(ctx, userID)
		if err != nil {
			return err
		}
		sub, err := s.dojoSubRepo.GetLatestByDojoID(ctx, dojo.ID)
		if err != nil {
			return err
		}
		if sub.StripeSetupIntentID == nil {
			return common.NewNotFoundError("setup intent")
		}
		if sub.BillingStatus != models.BillingStatusSetupIntentCreated {
			return nil
		}

		intent, err := s.stripeSvc.RetrieveSetupIntent(ctx, *sub.StripeSetupIntentID)
		if err != nil {
			return err
		}
		if intent.Status != stripe.SetupIntentStatusSucceeded {
			return common.NewValidationError("setup_intent", "setup not complete")
		}

		paymentMethodID := ""
		if intent.PaymentMethod != nil {
			paymentMethodID = intent.PaymentMethod.ID
		}

		remote, err := s.stripeSvc.CreateSubscription(ctx, CreateSubscriptionParams{
			CustomerID:      common.SafeString(dojo.StripeCustomerID),
			PriceID:         s.platformPriceID,
			PaymentMethodID: paymentMethodID,
			Trial:           !dojo.HasUsedTrial,
			IdempotencyKey:  fmt.Sprintf("dojo-admin-sub-%s", sub.ID),
			Metadata:        dojoSubMetadata(dojo.ID),
		})
		if err != nil {
			return err
		}

		status, err := mapStripeSubStatus(remote.Status)
		if err != nil {
			return err
		}

		raw := string(remote.Status)
		sub.BillingStatus = status
		sub.StripeSubscriptionID = &remote.ID
		sub.StripeSubscriptionStatus = &raw
		if err := s.dojoSubRepo.Update(ctx, sub); err != nil {
			return err
		}

		dojo.HasUsedTrial = true
		if err := s.setDojoStatus(ctx, dojo, deriveDojoStatus(status)); err != nil {
			return err
		}
		s.audit(ctx, dojo.ID, "dojo_subscription", sub.ID.String(), "confirmed:"+raw)
		return nil
	})
}

// EnsureClassPrice creates the gateway price object for a class once and
// stores its id. Only the owner of the class's dojo may call it.
func (s *billingService) EnsureClassPrice(ctx context.Context, userID, classID uuid.UUID) (string, error) {
	var priceID string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		class, err := s.classRepo.GetByID(ctx, classID)
		if err != nil {
			return err
		}
		dojo, err := s.dojoRepo.GetByID(ctx, class.DojoID)
		if err != nil {
			return err
		}
		if dojo.OwnerID != userID {
			return common.NewOwnershipError("class")
		}

		if class.StripePriceID != nil && *class.StripePriceID != "" {
			priceID = *class.StripePriceID
			return nil
		}

		price, err := s.stripeSvc.CreatePrice(ctx, CreatePriceParams{
			ProductName:     class.Name,
			UnitAmount:      class.PriceAmount,
			Currency:        class.Currency,
			WeeklyRecurring: class.Recurs(),
		})
		if err != nil {
			return err
		}
		class.StripePriceID = &price.ID
		if err := s.classRepo.Update(ctx, class); err != nil {
			return err
		}
		s.cachePrice(ctx, price)
		s.audit(ctx, dojo.ID, "class", class.ID.String(), "price_created:"+price.ID)
		priceID = price.ID
		return nil
	})
	return priceID, err
}

// CreateClassCheckout originates the payment intent for a bulk checkout
// of N children against one class, attaching the metadata contract the
// webhook dispatcher reads back.
func (s *billingService) CreateClassCheckout(ctx context.Context, userID, classID uuid.UUID, childIDs []uuid.UUID) (*CheckoutResult, error) {
	if len(childIDs) == 0 {
		return nil, common.NewValidationError("childIds", "at least one child is required")
	}

	var result *CheckoutResult
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		class, err := s.classRepo.GetByID(ctx, classID)
		if err != nil {
			return err
		}
		if class.StripePriceID == nil || *class.StripePriceID == "" {
			return common.NewValidationError("class", "class price not configured")
		}

		price, err := s.classPrice(ctx, *class.StripePriceID)
		if err != nil {
			return err
		}

		customerID, err := s.ensureUserCustomer(ctx, userID)
		if err != nil {
			return err
		}

		kind := ObjectKindOneTimeClass
		if class.Recurs() {
			kind = ObjectKindClassSub
		}

		intent, err := s.stripeSvc.CreatePaymentIntent(ctx, CreatePaymentIntentParams{
			Amount:     price.UnitAmount * int64(len(childIDs)),
			Currency:   class.Currency,
			CustomerID: customerID,
			Metadata:   checkoutIntentMetadata(kind, class.ID, childIDs, *class.StripePriceID),
		})
		if err != nil {
			return err
		}
		result = &CheckoutResult{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}
		return nil
	})
	return result, err
}

// CreateClassSubscriptionsFromPaymentIntent settles a bulk checkout: for
// a recurring class, one remote subscription and one local row per child;
// for a single-occurrence class, one payment record per child carrying
// the full intent amount. Enrollment is reconciled per child in the same
// transaction. One checkout can arrive as both a payment_intent and a
// checkout.session event under distinct event ids, so children already
// settled for this intent are skipped rather than inserted twice.
func (s *billingService) CreateClassSubscriptionsFromPaymentIntent(ctx context.Context, intent *stripe.PaymentIntent) error {
	if intent.Customer == nil || intent.Customer.ID == "" {
		return common.NewValidationError("customer", "missing customer on payment intent")
	}
	md, err := parseCheckoutMetadata(intent.Metadata)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		class, err := s.classRepo.GetByID(ctx, md.ClassID)
		if err != nil {
			return err
		}

		for _, childID := range md.ChildIDs {
			if class.Recurs() {
				// The idempotency key pins the remote side: a retried call
				// gets the same subscription back, and an existing local
				// row for it means this child is already settled.
				remote, err := s.stripeSvc.CreateSubscription(ctx, CreateSubscriptionParams{
					CustomerID:     intent.Customer.ID,
					PriceID:        md.PriceID,
					IdempotencyKey: fmt.Sprintf("class-sub-%s-%s", intent.ID, childID),
					Metadata:       classSubMetadata(class.ID, childID),
				})
				if err != nil {
					return err
				}
				_, err = s.classSubRepo.GetByStripeSubscriptionID(ctx, remote.ID)
				if err == nil {
					if err := s.enrollments.Activate(ctx, childID, class.ID); err != nil {
						return err
					}
					continue
				}
				if !common.IsNotFound(err) {
					return err
				}
				sub := &models.ClassSubscription{
					ID:                   uuid.New(),
					StudentID:            childID,
					ClassID:              class.ID,
					StripeCustomerID:     intent.Customer.ID,
					StripeSubscriptionID: remote.ID,
					Status:               models.BillingStatusActive,
				}
				if err := s.classSubRepo.Create(ctx, sub); err != nil {
					return err
				}
			} else {
				paid, err := s.paymentRepo.ExistsForStudent(ctx, intent.ID, childID)
				if err != nil {
					return err
				}
				if paid {
					if err := s.enrollments.Activate(ctx, childID, class.ID); err != nil {
						return err
					}
					continue
				}
				payment := &models.OneTimeClassPayment{
					ID:                    uuid.New(),
					StudentID:             childID,
					ClassID:               class.ID,
					StripePaymentIntentID: intent.ID,
					Amount:                intent.Amount,
					Status:                string(intent.Status),
					PaidAt:                time.Now(),
				}
				if err := s.paymentRepo.Create(ctx, payment); err != nil {
					return err
				}
			}

			if err := s.enrollments.Activate(ctx, childID, class.ID); err != nil {
				return err
			}
		}

		s.audit(ctx, class.DojoID, "class_checkout", intent.ID, fmt.Sprintf("settled:%d", len(md.ChildIDs)))
		return nil
	})
}

// SettleCheckoutSession handles a completed hosted-checkout session. The
// session payload carries only the payment intent's id, so the full
// intent (amount, customer, metadata) is fetched back from the gateway
// before settling. A session whose intent lacks the checkout metadata
// contract is rejected, never marked processed.
func (s *billingService) SettleCheckoutSession(ctx context.Context, session *stripe.CheckoutSession) error {
	if session.PaymentIntent == nil || session.PaymentIntent.ID == "" {
		return common.NewValidationError("payment_intent", "missing payment intent on checkout session")
	}

	intent, err := s.stripeSvc.RetrievePaymentIntent(ctx, session.PaymentIntent.ID)
	if err != nil {
		return err
	}
	return s.CreateClassSubscriptionsFromPaymentIntent(ctx, intent)
}

// SyncDojoSubscription reconciles a dojo subscription against the remote
// object carried by a subscription created/updated event.
func (s *billingService) SyncDojoSubscription(ctx context.Context, remote *stripe.Subscription) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.dojoSubRepo.GetByStripeSubscriptionID(ctx, remote.ID)
		if err != nil {
			return err
		}
		status, err := mapStripeSubStatus(remote.Status)
		if err != nil {
			return err
		}
		raw := string(remote.Status)
		return s.updateDojoBilling(ctx, sub, status, &raw)
	})
}

func (s *billingService) MarkDojoSubPastDue(ctx context.Context, stripeSubID string) error {
	return s.markDojoSub(ctx, stripeSubID, models.BillingStatusPastDue)
}

func (s *billingService) MarkDojoSubActive(ctx context.Context, stripeSubID string) error {
	return s.markDojoSub(ctx, stripeSubID, models.BillingStatusActive)
}

func (s *billingService) MarkDojoSubCancelled(ctx context.Context, remote *stripe.Subscription) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.dojoSubRepo.GetByStripeSubscriptionID(ctx, remote.ID)
		if err != nil {
			return err
		}
		raw := string(remote.Status)
		return s.updateDojoBilling(ctx, sub, models.BillingStatusCancelled, &raw)
	})
}

// MarkDojoPaymentMethodAttached advances a pending setup to
// PaymentMethodAttached when the gateway reports the setup intent
// succeeded. A subscription already past setup is left untouched.
func (s *billingService) MarkDojoPaymentMethodAttached(ctx context.Context, intent *stripe.SetupIntent) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.dojoSubRepo.GetByStripeSetupIntentID(ctx, intent.ID)
		if err != nil {
			return err
		}
		if sub.BillingStatus != models.BillingStatusSetupIntentCreated {
			return nil
		}
		return s.updateDojoBilling(ctx, sub, models.BillingStatusPaymentMethodAttached, nil)
	})
}

// SyncClassSubscription reconciles a class subscription and its
// enrollment against the remote object.
func (s *billingService) SyncClassSubscription(ctx context.Context, remote *stripe.Subscription) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.classSubRepo.GetByStripeSubscriptionID(ctx, remote.ID)
		if err != nil {
			return err
		}
		status, err := mapStripeSubStatus(remote.Status)
		if err != nil {
			return err
		}
		return s.applyClassSubStatus(ctx, sub, status)
	})
}

func (s *billingService) MarkClassSubPastDue(ctx context.Context, stripeSubID string) error {
	return s.markClassSub(ctx, stripeSubID, models.BillingStatusPastDue)
}

func (s *billingService) MarkClassSubActive(ctx context.Context, stripeSubID string) error {
	return s.markClassSub(ctx, stripeSubID, models.BillingStatusActive)
}

func (s *billingService) MarkClassSubCancelled(ctx context.Context, remote *stripe.Subscription) error {
	return s.markClassSub(ctx, remote.ID, models.BillingStatusCancelled)
}

// mapStripeSubStatus maps a raw gateway subscription status onto the
// local billing state machine. An unmapped value is a hard error: coercing
// it into a default would corrupt the meaning of the stored state.
func mapStripeSubStatus(status stripe.SubscriptionStatus) (models.BillingStatus, error) {
	switch status {
	case stripe.SubscriptionStatusTrialing:
		return models.BillingStatusTrialing, nil
	case stripe.SubscriptionStatusActive:
		return models.BillingStatusActive, nil
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusPaused, stripe.SubscriptionStatusIncomplete:
		return models.BillingStatusPastDue, nil
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return models.BillingStatusCancelled, nil
	default:
		return "", common.NewValidationError("subscription_status", fmt.Sprintf("unmapped gateway subscription status %q", status))
	}
}

// deriveDojoStatus derives the user-facing dojo status from the billing
// status. Unlike mapStripeSubStatus this is total with a safe default:
// Registered is the pre-billing baseline.
func deriveDojoStatus(status models.BillingStatus) models.DojoStatus {
	switch status {
	case models.BillingStatusTrialing:
		return models.DojoStatusTrialing
	case models.BillingStatusActive:
		return models.DojoStatusActive
	case models.BillingStatusPastDue:
		return models.DojoStatusPastDue
	case models.BillingStatusCancelled:
		return models.DojoStatusBlocked
	case models.BillingStatusSetupIntentCreated, models.BillingStatusPaymentMethodAttached:
		return models.DojoStatusOnboardingIncomplete
	default:
		return models.DojoStatusRegistered
	}
}

func (s *billingService) markDojoSub(ctx context.Context, stripeSubID string, status models.BillingStatus) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.dojoSubRepo.GetByStripeSubscriptionID(ctx, stripeSubID)
		if err != nil {
			return err
		}
		return s.updateDojoBilling(ctx, sub, status, nil)
	})
}

func (s *billingService) markClassSub(ctx context.Context, stripeSubID string, status models.BillingStatus) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.classSubRepo.GetByStripeSubscriptionID(ctx, stripeSubID)
		if err != nil {
			return err
		}
		return s.applyClassSubStatus(ctx, sub, status)
	})
}

func (s *billingService) updateDojoBilling(ctx context.Context, sub *models.DojoSubscription, status models.BillingStatus, raw *string) error {
	sub.BillingStatus = status
	if raw != nil {
		sub.StripeSubscriptionStatus = raw
	}
	if err := s.dojoSubRepo.Update(ctx, sub); err != nil {
		return err
	}

	dojo, err := s.dojoRepo.GetByID(ctx, sub.DojoID)
	if err != nil {
		return err
	}
	if err := s.setDojoStatus(ctx, dojo, deriveDojoStatus(status)); err != nil {
		return err
	}
	s.audit(ctx, dojo.ID, "dojo_subscription", sub.ID.String(), "status:"+string(status))
	return nil
}

func (s *billingService) applyClassSubStatus(ctx context.Context, sub *models.ClassSubscription, status models.BillingStatus) error {
	sub.Status = status

	switch {
	case status.IsActiveFamily():
		if err := s.enrollments.Activate(ctx, sub.StudentID, sub.ClassID); err != nil {
			return err
		}
	case status == models.BillingStatusCancelled:
		now := time.Now()
		if sub.EndedAt == nil {
			sub.EndedAt = &now
		}
		if err := s.enrollments.Deactivate(ctx, sub.StudentID, sub.ClassID, now); err != nil {
			return err
		}
	}

	return s.classSubRepo.Update(ctx, sub)
}

func (s *billingService) setDojoStatus(ctx context.Context, dojo *models.Dojo, status models.DojoStatus) error {
	dojo.Status = status
	return s.dojoRepo.Update(ctx, dojo)
}

func (s *billingService) ensureDojoCustomer(ctx context.Context, dojo *models.Dojo) (string, error) {
	if dojo.StripeCustomerID != nil && *dojo.StripeCustomerID != "" {
		return *dojo.StripeCustomerID, nil
	}

	owner, err := s.userRepo.GetByID(ctx, dojo.OwnerID)
	if err != nil {
		return "", err
	}
	customer, err := s.stripeSvc.CreateCustomer(ctx, owner.Email, dojo.Name, dojoSubMetadata(dojo.ID))
	if err != nil {
		return "", err
	}
	dojo.StripeCustomerID = &customer.ID
	if err := s.dojoRepo.Update(ctx, dojo); err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (s *billingService) ensureUserCustomer(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	customer, err := s.stripeSvc.CreateCustomer(ctx, user.Email, user.FirstName+" "+user.LastName, nil)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.SetStripeCustomerID(ctx, user.ID, customer.ID); err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (s *billingService) classPrice(ctx context.Context, priceID string) (*stripe.Price, error) {
	if cached, err := s.cacheSvc.GetPrice(ctx, priceID); err == nil && cached != nil {
		return cached, nil
	}
	price, err := s.stripeSvc.RetrievePrice(ctx, priceID)
	if err != nil {
		return nil, err
	}
	s.cachePrice(ctx, price)
	return price, nil
}

func (s *billingService) cachePrice(ctx context.Context, price *stripe.Price) {
	if err := s.cacheSvc.SetPrice(ctx, price, priceCacheTTL); err != nil {
		log.Printf("Failed to cache price %s: %v", price.ID, err)
	}
}

func (s *billingService) audit(ctx context.Context, dojoID uuid.UUID, entityType, entityID, action string) {
	entry := &models.AuditLog{
		ID:         uuid.New(),
		DojoID:     dojoID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for %s %s: %v", entityType, entityID, err)
	}
}
