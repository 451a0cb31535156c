package services

import (
	"context"
	"time"

	"dojohub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	stripe "github.com/stripe/stripe-go/v82"
)

// stubTxManager runs the function directly; transaction boundaries are
// exercised in the repository tests.
type stubTxManager struct{}

func (stubTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockDojoRepository struct {
	mock.Mock
}

func (m *MockDojoRepository) Create(ctx context.Context, dojo *models.Dojo) error {
	args := m.Called(ctx, dojo)
	return args.Error(0)
}

func (m *MockDojoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dojo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dojo), args.Error(1)
}

func (m *MockDojoRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Dojo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dojo), args.Error(1)
}

func (m *MockDojoRepository) Update(ctx context.Context, dojo *models.Dojo) error {
	args := m.Called(ctx, dojo)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	args := m.Called(ctx, id, customerID)
	return args.Error(0)
}

type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) Create(ctx context.Context, class *models.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Class), args.Error(1)
}

func (m *MockClassRepository) Update(ctx context.Context, class *models.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

type MockDojoSubscriptionRepository struct {
	mock.Mock
}

func (m *MockDojoSubscriptionRepository) Create(ctx context.Context, sub *models.DojoSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockDojoSubscriptionRepository) GetLatestByDojoID(ctx context.Context, dojoID uuid.UUID) (*models.DojoSubscription, error) {
	args := m.Called(ctx, dojoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DojoSubscription), args.Error(1)
}

func (m *MockDojoSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.DojoSubscription, error) {
	args := m.Called(ctx, stripeSubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DojoSubscription), args.Error(1)
}

func (m *MockDojoSubscriptionRepository) GetByStripeSetupIntentID(ctx context.Context, setupIntentID string) (*models.DojoSubscription, error) {
	args := m.Called(ctx, setupIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DojoSubscription), args.Error(1)
}

func (m *MockDojoSubscriptionRepository) Update(ctx context.Context, sub *models.DojoSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type MockClassSubscriptionRepository struct {
	mock.Mock
}

func (m *MockClassSubscriptionRepository) Create(ctx context.Context, sub *models.ClassSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockClassSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.ClassSubscription, error) {
	args := m.Called(ctx, stripeSubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClassSubscription), args.Error(1)
}

func (m *MockClassSubscriptionRepository) Update(ctx context.Context, sub *models.ClassSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type MockOneTimeClassPaymentRepository struct {
	mock.Mock
}

func (m *MockOneTimeClassPaymentRepository) Create(ctx context.Context, payment *models.OneTimeClassPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockOneTimeClassPaymentRepository) ExistsForStudent(ctx context.Context, paymentIntentID string, studentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, paymentIntentID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOneTimeClassPaymentRepository) ListByStripePaymentIntentID(ctx context.Context, paymentIntentID string) ([]*models.OneTimeClassPayment, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OneTimeClassPayment), args.Error(1)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) Create(ctx context.Context, log *models.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) ListByDojoID(ctx context.Context, dojoID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(ctx, dojoID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

type MockEnrollmentStore struct {
	mock.Mock
}

func (m *MockEnrollmentStore) Activate(ctx context.Context, studentID, classID uuid.UUID) error {
	args := m.Called(ctx, studentID, classID)
	return args.Error(0)
}

func (m *MockEnrollmentStore) Deactivate(ctx context.Context, studentID, classID uuid.UUID, revokedAt time.Time) error {
	args := m.Called(ctx, studentID, classID, revokedAt)
	return args.Error(0)
}

type MockStripeService struct {
	mock.Mock
}

func (m *MockStripeService) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error) {
	args := m.Called(ctx, email, name, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Customer), args.Error(1)
}

func (m *MockStripeService) CreateSetupIntent(ctx context.Context, customerID string, metadata map[string]string) (*stripe.SetupIntent, error) {
	args := m.Called(ctx, customerID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.SetupIntent), args.Error(1)
}

func (m *MockStripeService) RetrieveSetupIntent(ctx context.Context, id string) (*stripe.SetupIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.SetupIntent), args.Error(1)
}

func (m *MockStripeService) CreateSubscription(ctx context.Context, params CreateSubscriptionParams) (*stripe.Subscription, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func (m *MockStripeService) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func (m *MockStripeService) CreatePrice(ctx context.Context, params CreatePriceParams) (*stripe.Price, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Price), args.Error(1)
}

func (m *MockStripeService) RetrievePrice(ctx context.Context, id string) (*stripe.Price, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Price), args.Error(1)
}

func (m *MockStripeService) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*stripe.PaymentIntent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.PaymentIntent), args.Error(1)
}

func (m *MockStripeService) RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.PaymentIntent), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPrice(ctx context.Context, priceID string) (*stripe.Price, error) {
	args := m.Called(ctx, priceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Price), args.Error(1)
}

func (m *MockCacheService) SetPrice(ctx context.Context, price *stripe.Price, ttl time.Duration) error {
	args := m.Called(ctx, price, ttl)
	return args.Error(0)
}

type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWebhookEventRepository) Create(ctx context.Context, event *models.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) SetupDojoAdminBilling(ctx context.Context, dojoID, userID uuid.UUID) (*SetupResult, error) {
	args := m.Called(ctx, dojoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SetupResult), args.Error(1)
}

func (m *MockBillingService) ConfirmDojoAdminBilling(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockBillingService) CreateClassCheckout(ctx context.Context, userID, classID uuid.UUID, childIDs []uuid.UUID) (*CheckoutResult, error) {
	args := m.Called(ctx, userID, classID, childIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutResult), args.Error(1)
}

func (m *MockBillingService) EnsureClassPrice(ctx context.Context, userID, classID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID, classID)
	return args.String(0), args.Error(1)
}

func (m *MockBillingService) SyncDojoSubscription(ctx context.Context, remote *stripe.Subscription) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

func (m *MockBillingService) MarkDojoSubPastDue(ctx context.Context, stripeSubID string) error {
	args := m.Called(ctx, stripeSubID)
	return args.Error(0)
}

func (m *MockBillingService) MarkDojoSubActive(ctx context.Context, stripeSubID string) error {
	args := m.Called(ctx, stripeSubID)
	return args.Error(0)
}

func (m *MockBillingService) MarkDojoSubCancelled(ctx context.Context, remote *stripe.Subscription) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

func (m *MockBillingService) MarkDojoPaymentMethodAttached(ctx context.Context, intent *stripe.SetupIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *MockBillingService) SyncClassSubscription(ctx context.Context, remote *stripe.Subscription) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

func (m *MockBillingService) MarkClassSubPastDue(ctx context.Context, stripeSubID string) error {
	args := m.Called(ctx, stripeSubID)
	return args.Error(0)
}

func (m *MockBillingService) MarkClassSubActive(ctx context.Context, stripeSubID string) error {
	args := m.Called(ctx, stripeSubID)
	return args.Error(0)
}

func (m *MockBillingService) MarkClassSubCancelled(ctx context.Context, remote *stripe.Subscription) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

func (m *MockBillingService) CreateClassSubscriptionsFromPaymentIntent(ctx context.Context, intent *stripe.PaymentIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *MockBillingService) SettleCheckoutSession(ctx context.Context, session *stripe.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
