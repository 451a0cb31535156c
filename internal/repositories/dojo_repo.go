package repositories

import (
	"context"
	"errors"

	"dojohub/internal/common"
	"dojohub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DojoRepository interface {
	Create(ctx context.Context, dojo *models.Dojo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dojo, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Dojo, error)
	Update(ctx context.Context, dojo *models.Dojo) error
}

type dojoRepo struct {
	db Database
}

func NewDojoRepo(db Database) DojoRepository {
	return &dojoRepo{db: db}
}

func (r *dojoRepo) Create(ctx context.Context, dojo *models.Dojo) error {
	query := `
		INSERT INTO dojos (id, owner_id, name, status, stripe_customer_id, has_used_trial, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, dojo.ID, dojo.OwnerID, dojo.Name, dojo.Status, dojo.StripeCustomerID, dojo.HasUsedTrial)
	return err
}

func (r *dojoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dojo, error) {
	dojo := &models.Dojo{}
	query := `
		SELECT id, owner_id, name, status, stripe_customer_id, has_used_trial, created_at, updated_at
		FROM dojos
		WHERE id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, id).Scan(&dojo.ID, &dojo.OwnerID, &dojo.Name, &dojo.Status, &dojo.StripeCustomerID, &dojo.HasUsedTrial, &dojo.CreatedAt, &dojo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("dojo")
		}
		return nil, err
	}
	return dojo, nil
}

func (r *dojoRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Dojo, error) {
	dojo := &models.Dojo{}
	query := `
		SELECT id, owner_id, name, status, stripe_customer_id, has_used_trial, created_at, updated_at
		FROM dojos
		WHERE owner_id = $1
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, ownerID).Scan(&dojo.ID, &dojo.OwnerID, &dojo.Name, &dojo.Status, &dojo.StripeCustomerID, &dojo.HasUsedTrial, &dojo.CreatedAt, &dojo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("dojo")
		}
		return nil, err
	}
	return dojo, nil
}

func (r *dojoRepo) Update(ctx context.Context, dojo *models.Dojo) error {
	query := `
		UPDATE dojos
		SET name = $1, status = $2, stripe_customer_id = $3, has_used_trial = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, dojo.Name, dojo.Status, dojo.StripeCustomerID, dojo.HasUsedTrial, dojo.ID)
	return err
}
