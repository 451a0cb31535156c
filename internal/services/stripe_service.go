package services

import (
	"context"

	"dojohub/internal/common"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Platform subscriptions grant a 30-day trial to dojos that have not used
// one yet.
const trialPeriodDays = 30

// CreateSubscriptionParams carries everything the gateway needs to start
// a subscription. IdempotencyKey must be deterministic for the logical
// operation so a retried call cannot create two remote subscriptions.
type CreateSubscriptionParams struct {
	CustomerID      string
	PriceID         string
	PaymentMethodID string
	Trial           bool
	IdempotencyKey  string
	Metadata        map[string]string
}

// CreatePriceParams describes a gateway price object for a class.
type CreatePriceParams struct {
	ProductName     string
	UnitAmount      int64
	Currency        string
	WeeklyRecurring bool
}

// CreatePaymentIntentParams describes a one-off charge.
type CreatePaymentIntentParams struct {
	Amount     int64
	Currency   string
	CustomerID string
	Metadata   map[string]string
}

// StripeService is the payment gateway adapter. Calls are never retried
// internally; failures wrap into common.GatewayError and the caller's own
// retry (user resubmission or webhook redelivery) is the recovery path.
type StripeService interface {
	CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error)
	CreateSetupIntent(ctx context.Context, customerID string, metadata map[string]string) (*stripe.SetupIntent, error)
	RetrieveSetupIntent(ctx context.Context, id string) (*stripe.SetupIntent, error)
	CreateSubscription(ctx context.Context, params CreateSubscriptionParams) (*stripe.Subscription, error)
	RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	CreatePrice(ctx context.Context, params CreatePriceParams) (*stripe.Price, error)
	RetrievePrice(ctx context.Context, id string) (*stripe.Price, error)
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

type stripeService struct {
	api *client.API
}

// NewStripeService creates a StripeService backed by an explicitly
// constructed API client instance (no package-global key).
func NewStripeService(apiKey string) StripeService {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &stripeService{api: api}
}

func (s *stripeService) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	customer, err := s.api.Customers.New(params)
	if err != nil {
		return nil, common.NewGatewayError("create customer", err)
	}
	return customer, nil
}

func (s *stripeService) CreateSetupIntent(ctx context.Context, customerID string, metadata map[string]string) (*stripe.SetupIntent, error) {
	params := &stripe.SetupIntentParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := s.api.SetupIntents.New(params)
	if err != nil {
		return nil, common.NewGatewayError("create setup intent", err)
	}
	return intent, nil
}

func (s *stripeService) RetrieveSetupIntent(ctx context.Context, id string) (*stripe.SetupIntent, error) {
	params := &stripe.SetupIntentParams{}
	params.Context = ctx

	intent, err := s.api.SetupIntents.Get(id, params)
	if err != nil {
		return nil, common.NewGatewayError("retrieve setup intent", err)
	}
	return intent, nil
}

func (s *stripeService) CreateSubscription(ctx context.Context, p CreateSubscriptionParams) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(p.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(p.PriceID)},
		},
	}
	params.Context = ctx
	if p.PaymentMethodID != "" {
		params.DefaultPaymentMethod = stripe.String(p.PaymentMethodID)
	}
	if p.Trial {
		params.TrialPeriodDays = stripe.Int64(trialPeriodDays)
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sub, err := s.api.Subscriptions.New(params)
	if err != nil {
		return nil, common.NewGatewayError("create subscription", err)
	}
	return sub, nil
}

func (s *stripeService) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := s.api.Subscriptions.Get(id, params)
	if err != nil {
		return nil, common.NewGatewayError("retrieve subscription", err)
	}
	return sub, nil
}

func (s *stripeService) CreatePrice(ctx context.Context, p CreatePriceParams) (*stripe.Price, error) {
	params := &stripe.PriceParams{
		UnitAmount: stripe.Int64(p.UnitAmount),
		Currency:   stripe.String(p.Currency),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(p.ProductName),
		},
	}
	params.Context = ctx
	if p.WeeklyRecurring {
		params.Recurring = &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalWeek)),
		}
	}

	price, err := s.api.Prices.New(params)
	if err != nil {
		return nil, common.NewGatewayError("create price", err)
	}
	return price, nil
}

func (s *stripeService) RetrievePrice(ctx context.Context, id string) (*stripe.Price, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx

	price, err := s.api.Prices.Get(id, params)
	if err != nil {
		return nil, common.NewGatewayError("retrieve price", err)
	}
	return price, nil
}

func (s *stripeService) CreatePaymentIntent(ctx context.Context, p CreatePaymentIntentParams) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(p.Amount),
		Currency:           stripe.String(p.Currency),
		Customer:           stripe.String(p.CustomerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, common.NewGatewayError("create payment intent", err)
	}
	return intent, nil
}

func (s *stripeService) RetrievePaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, common.NewGatewayError("retrieve payment intent", err)
	}
	return intent, nil
}
