package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is a student's membership in a class. For paid classes,
// Active must always agree with the most recent terminal billing signal
// for the (student, class) pair; both are mutated in the same
// transaction.
type Enrollment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	StudentID uuid.UUID  `json:"student_id" db:"student_id"`
	ClassID   uuid.UUID  `json:"class_id" db:"class_id"`
	Active    bool       `json:"active" db:"active"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
