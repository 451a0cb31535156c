package repositories

import (
	"context"
	"errors"

	"dojohub/internal/common"
	"dojohub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, first_name, last_name, stripe_customer_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.StripeCustomerID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("user")
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) SetStripeCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	query := `
		UPDATE users
		SET stripe_customer_id = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, customerID, id)
	return err
}
