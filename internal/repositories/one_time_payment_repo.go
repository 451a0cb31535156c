package repositories

import (
	"context"

	"dojohub/internal/models"

	"github.com/google/uuid"
)

// OneTimeClassPaymentRepository persists one-time class charges. Rows are
// immutable after insert; a payment intent may carry several children, so
// uniqueness is on (stripe_payment_intent_id, student_id).
type OneTimeClassPaymentRepository interface {
	Create(ctx context.Context, payment *models.OneTimeClassPayment) error
	ExistsForStudent(ctx context.Context, paymentIntentID string, studentID uuid.UUID) (bool, error)
	ListByStripePaymentIntentID(ctx context.Context, paymentIntentID string) ([]*models.OneTimeClassPayment, error)
}

type oneTimeClassPaymentRepo struct {
	db Database
}

func NewOneTimeClassPaymentRepo(db Database) OneTimeClassPaymentRepository {
	return &oneTimeClassPaymentRepo{db: db}
}

func (r *oneTimeClassPaymentRepo) Create(ctx context.Context, payment *models.OneTimeClassPayment) error {
	query := `
		INSERT INTO one_time_class_payments (id, student_id, class_id, stripe_payment_intent_id, amount, status, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, payment.ID, payment.StudentID, payment.ClassID, payment.StripePaymentIntentID, payment.Amount, payment.Status, payment.PaidAt)
	return err
}

// ExistsForStudent reports whether a payment intent has already been
// settled for a given student, so bulk settlement can skip that child on
// a redelivered or cross-event duplicate.
func (r *oneTimeClassPaymentRepo) ExistsForStudent(ctx context.Context, paymentIntentID string, studentID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM one_time_class_payments
			WHERE stripe_payment_intent_id = $1 AND student_id = $2
		)
	`
	var exists bool
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, paymentIntentID, studentID).Scan(&exists)
	return exists, err
}

func (r *oneTimeClassPaymentRepo) ListByStripePaymentIntentID(ctx context.Context, paymentIntentID string) ([]*models.OneTimeClassPayment, error) {
	query := `
		SELECT id, student_id, class_id, stripe_payment_intent_id, amount, status, paid_at
		FROM one_time_class_payments
		WHERE stripe_payment_intent_id = $1
		ORDER BY paid_at
	`
	rows, err := dbFrom(ctx, r.db).Query(ctx, query, paymentIntentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.OneTimeClassPayment
	for rows.Next() {
		payment := &models.OneTimeClassPayment{}
		if err := rows.Scan(&payment.ID, &payment.StudentID, &payment.ClassID, &payment.StripePaymentIntentID, &payment.Amount, &payment.Status, &payment.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
