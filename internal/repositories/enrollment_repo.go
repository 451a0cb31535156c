package repositories

import (
	"context"
	"errors"
	"time"

	"dojohub/internal/common"
	"dojohub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EnrollmentRepository owns a student's membership rows in classes.
// Activate creates the row when absent and reactivates it when inactive,
// never duplicating; Deactivate flips it off and stamps revoked_at.
type EnrollmentRepository interface {
	GetByStudentAndClass(ctx context.Context, studentID, classID uuid.UUID) (*models.Enrollment, error)
	Activate(ctx context.Context, studentID, classID uuid.UUID) error
	Deactivate(ctx context.Context, studentID, classID uuid.UUID, revokedAt time.Time) error
}

type enrollmentRepo struct {
	db Database
}

func NewEnrollmentRepo(db Database) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) GetByStudentAndClass(ctx context.Context, studentID, classID uuid.UUID) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{}
	query := `
		SELECT id, student_id, class_id, active, revoked_at, created_at, updated_at
		FROM enrollments
		WHERE student_id = $1 AND class_id = $2
	`
	err := dbFrom(ctx, r.db).QueryRow(ctx, query, studentID, classID).Scan(&enrollment.ID, &enrollment.StudentID, &enrollment.ClassID, &enrollment.Active, &enrollment.RevokedAt, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("enrollment")
		}
		return nil, err
	}
	return enrollment, nil
}

func (r *enrollmentRepo) Activate(ctx context.Context, studentID, classID uuid.UUID) error {
	existing, err := r.GetByStudentAndClass(ctx, studentID, classID)
	if err != nil {
		if !common.IsNotFound(err) {
			return err
		}
		query := `
			INSERT INTO enrollments (id, student_id, class_id, active, revoked_at, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, NULL, NOW(), NOW())
		`
		_, err := dbFrom(ctx, r.db).Exec(ctx, query, uuid.New(), studentID, classID)
		return err
	}

	if existing.Active {
		return nil
	}

	query := `
		UPDATE enrollments
		SET active = TRUE, revoked_at = NULL, updated_at = NOW()
		WHERE id = $1
	`
	_, err = dbFrom(ctx, r.db).Exec(ctx, query, existing.ID)
	return err
}

func (r *enrollmentRepo) Deactivate(ctx context.Context, studentID, classID uuid.UUID, revokedAt time.Time) error {
	existing, err := r.GetByStudentAndClass(ctx, studentID, classID)
	if err != nil {
		return err
	}

	query := `
		UPDATE enrollments
		SET active = FALSE, revoked_at = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err = dbFrom(ctx, r.db).Exec(ctx, query, revokedAt, existing.ID)
	return err
}
