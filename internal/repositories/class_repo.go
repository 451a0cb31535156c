package repositories

import (
	"context"
	"errors"

	"dojohub/internal/common"
	"dojohub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
}

type classRepo struct {
	db Database
}

func NewClassRepo(db Database) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (id, dojo_id, name, recurrence, price_amount, currency, stripe_price_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, class.ID, class.DojoID, class.Name, class.Recurrence, class.PriceAmount, class.Currency, class.StripePriceID)
	return err
}

func (r *classRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	class := &models.Class{}
	query := `
		SELECT id, dojo_id, name, recurrence, price_amount, currency, stripe_price_id, created_at, updated_at
		FROM classes
		WHERE id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, id).Scan(&class.ID, &class.DojoID, &class.Name, &class.Recurrence, &class.PriceAmount, &class.Currency, &class.StripePriceID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("class")
		}
		return nil, err
	}
	return class, nil
}

func (r *classRepo) Update(ctx context.Context, class *models.Class) error {
	query := `
		UPDATE classes
		SET name = $1, recurrence = $2, price_amount = $3, currency = $4, stripe_price_id = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, class.Name, class.Recurrence, class.PriceAmount, class.Currency, class.StripePriceID, class.ID)
	return err
}
