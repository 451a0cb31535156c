package repositories

import (
	"context"

	"dojohub/internal/models"

	"github.com/google/uuid"
)

// AuditLogsRepository records billing state transitions per dojo.
type AuditLogsRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	ListByDojoID(ctx context.Context, dojoID uuid.UUID, limit, offset int) ([]*models.AuditLog, error)
}

type auditLogsRepo struct {
	db Database
}

func NewAuditLogsRepo(db Database) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, dojo_id, entity_type, entity_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := dbFrom(ctx, r.db).Exec(ctx, query, log.ID, log.DojoID, log.EntityType, log.EntityID, log.Action, log.Detail)
	return err
}

func (r *auditLogsRepo) ListByDojoID(ctx context.Context, dojoID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, dojo_id, entity_type, entity_id, action, detail, created_at
		FROM audit_logs
		WHERE dojo_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := dbFrom(ctx, r.db).Query(ctx, query, dojoID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		log := &models.AuditLog{}
		if err := rows.Scan(&log.ID, &log.DojoID, &log.EntityType, &log.EntityID, &log.Action, &log.Detail, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
