package services

import (
	"math"

	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/models"
	"gorm.io/gorm"
)

// ComputeProgress derives the completion percentage for a student on a course
// from the raw completion records. It is always a full recompute against the
// current lesson set, never an incremental patch, so the stored percentage
// self-corrects when lessons are added or removed after completions exist.
func ComputeProgress(db *gorm.DB, studentID, courseID uuid.UUID) (int, error) {
	var total int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var completed int64
	err := db.Model(&models.LessonCompletion{}).
		Joins("JOIN lessons ON lesson_completions.lesson_id = lessons.id").
		Where("lessons.course_id = ? AND lesson_completions.student_id = ?", courseID, studentID).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return int(math.Round(float64(completed) * 100.0 / float64(total))), nil
}
