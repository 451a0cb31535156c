package repositories

import (
	"context"
	"errors"

	"dojohub/internal/common"
	"dojohub/internal/models"

	"github.com/jackc/pgx/v5"
)

// ClassSubscriptionRepository persists per-student-per-class
// subscriptions, keyed for webhook handlers by the globally unique Stripe
// subscription id.
type ClassSubscriptionRepository interface {
	Create(ctx context.Context, sub *models.ClassSubscription) error
	GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.ClassSubscription, error)
	Update(ctx context.Context, sub *models.ClassSubscription) error
}

type classSubscriptionRepo struct {
	db Database
}

func NewClassSubscriptionRepo(db Database) ClassSubscriptionRepository {
	return &classSubscriptionRepo{db: db}
}

func (r *classSubscriptionRepo) Create(ctx context.Context, sub *models.ClassSubscription) error {
	query := `
		INSERT INTO class_subscriptions (id, student_id, class_id, stripe_customer_id, stripe_subscription_id, status, created_at, updated_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW(), $7)
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, sub.ID, sub.StudentID, sub.ClassID, sub.StripeCustomerID, sub.StripeSubscriptionID, sub.Status, sub.EndedAt)
	return err
}

func (r *classSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*models.ClassSubscription, error) {
	sub := &models.ClassSubscription{}
	query := `
		SELECT id, student_id, class_id, stripe_customer_id, stripe_subscription_id, status, created_at, updated_at, ended_at
		FROM class_subscriptions
		WHERE stripe_subscription_id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, stripeSubID).Scan(&sub.ID, &sub.StudentID, &sub.ClassID, &sub.StripeCustomerID, &sub.StripeSubscriptionID, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt, &sub.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("class subscription")
		}
		return nil, err
	}
	return sub, nil
}

func (r *classSubscriptionRepo) Update(ctx context.Context, sub *models.ClassSubscription) error {
	query := `
		UPDATE class_subscriptions
		SET status = $1, ended_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, sub.Status, sub.EndedAt, sub.ID)
	return err
}
