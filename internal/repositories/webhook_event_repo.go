package repositories

import (
	"context"

	"dojohub/internal/models"
)

// WebhookEventRepository is the append-only dedupe store for inbound
// gateway events. A row's existence is the sole idempotency signal; the
// dispatcher writes the row in the same transaction as the handling it
// records.
type WebhookEventRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, event *models.WebhookEvent) error
}

type webhookEventRepo struct {
	db Database
}

func NewWebhookEventRepo(db Database) WebhookEventRepository {
	return &webhookEventRepo{db: db}
}

func (r *webhookEventRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM webhook_events WHERE id = $1)`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *webhookEventRepo) Create(ctx context.Context, event *models.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (id, type, processed_at)
		VALUES ($1, $2, $3)
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, event.ID, event.Type, event.ProcessedAt)
	return err
}
