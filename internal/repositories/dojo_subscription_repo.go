package repositories

import (
	"context"
	"errors"

	"dojohub/internal/common"
	"dojohub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DojoSubscriptionRepository persists platform subscription rows. Rows
// are created only by the setup flow and never deleted; a partial unique
// index on dojo_id (where billing_status is in the active family)
// enforces at most one live subscription per dojo.
type DojoSubscriptionRepository interface {
	Create(ctx context.Context, sub *models.DojoSubscription) error
	GetLatestByDojoID(ctx context.Context, dojoID uuid.UUID) (*models.DojoSubscription, error)
	GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.DojoSubscription, error)
	GetByStripeSetupIntentID(ctx context.Context, setupIntentID string) (*models.DojoSubscription, error)
	Update(ctx context.Context, sub *models.DojoSubscription) error
}

type dojoSubscriptionRepo struct {
	db Database
}

func NewDojoSubscriptionRepo(db Database) DojoSubscriptionRepository {
	return &dojoSubscriptionRepo{db: db}
}

const dojoSubscriptionColumns = `id, dojo_id, billing_status, stripe_subscription_id, stripe_setup_intent_id, stripe_subscription_status, created_at, updated_at`

func (r *dojoSubscriptionRepo) Create(ctx context.Context, sub *models.DojoSubscription) error {
	query := `
		INSERT INTO dojo_subscriptions (id, dojo_id, billing_status, stripe_subscription_id, stripe_setup_intent_id, stripe_subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, sub.ID, sub.DojoID, sub.BillingStatus, sub.StripeSubscriptionID, sub.StripeSetupIntentID, sub.StripeSubscriptionStatus)
	return err
}

func (r *dojoSubscriptionRepo) GetLatestByDojoID(ctx context.Context, dojoID uuid.UUID) (*models.DojoSubscription, error) {
	sub := &models.DojoSubscription{}
	query := `
		SELECT ` + dojoSubscriptionColumns + `
		FROM dojo_subscriptions
		WHERE dojo_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, dojoID).Scan(&sub.ID, &sub.DojoID, &sub.BillingStatus, &sub.StripeSubscriptionID, &sub.StripeSetupIntentID, &sub.StripeSubscriptionStatus, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("dojo subscription")
		}
		return nil, err
	}
	return sub, nil
}

func (r *dojoSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.DojoSubscription, error) {
	sub := &models.DojoSubscription{}
	query := `
		SELECT ` + dojoSubscriptionColumns + `
		FROM dojo_subscriptions
		WHERE stripe_subscription_id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, stripeSubID).Scan(&sub.ID, &sub.DojoID, &sub.BillingStatus, &sub.StripeSubscriptionID, &sub.StripeSetupIntentID, &sub.StripeSubscriptionStatus, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("dojo subscription")
		}
		return nil, err
	}
	return sub, nil
}

func (r *dojoSubscriptionRepo) GetByStripeSetupIntentID(ctx context.Context, setupIntentID string) (*models.DojoSubscription, error) {
	sub := &models.DojoSubscription{}
	query := `
		SELECT ` + dojoSubscriptionColumns + `
		FROM dojo_subscriptions
		WHERE stripe_setup_intent_id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, setupIntentID).Scan(&sub.ID, &sub.DojoID, &sub.BillingStatus, &sub.StripeSubscriptionID, &sub.StripeSetupIntentID, &sub.StripeSubscriptionStatus, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("dojo subscription")
		}
		return nil, err
	}
	return sub, nil
}

func (r *dojoSubscriptionRepo) Update(ctx context.Context, sub *models.DojoSubscription) error {
	query := `
		UPDATE dojo_subscriptions
		SET billing_status = $1, stripe_subscription_id = $2, stripe_setup_intent_id = $3, stripe_subscription_status = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, sub.BillingStatus, sub.StripeSubscriptionID, sub.StripeSetupIntentID, sub.StripeSubscriptionStatus, sub.ID)
	return err
}
