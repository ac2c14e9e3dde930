package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Enrollment links one student to one course. The composite unique index on
// (student_id, course_id) is what makes registration safe under concurrent
// requests; the application never relies on a read-then-write existence check.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`

	PaymentStatus      string   `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod      string   `gorm:"size:50" json:"payment_method"`
	ProgressPercentage int      `gorm:"not null;default:0" json:"progress_percentage"`
	QuizScore          *float64 `json:"quiz_score"`
	IsPassed           *bool    `json:"is_passed"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
