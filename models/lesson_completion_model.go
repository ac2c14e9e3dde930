package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonCompletion marks a lesson as done for a student. At most one row per
// (student, lesson) pair; duplicate completion attempts are absorbed by an
// insert-on-conflict against the unique index, never reported as errors.
type LessonCompletion struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_completions_student_lesson" json:"student_id"`
	LessonID  uuid.UUID `gorm:"not null;uniqueIndex:idx_completions_student_lesson" json:"lesson_id"`

	Student User   `gorm:"foreignkey:StudentID" json:"-"`
	Lesson  Lesson `gorm:"foreignkey:LessonID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (lc *LessonCompletion) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == uuid.Nil {
		lc.ID = uuid.New()
	}
	return nil
}
