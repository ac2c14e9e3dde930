package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
)

// PaymentReceipt carries everything the caller needs to notify the student
// after a verification has been made durable. The notification itself is the
// caller's concern so that a gateway failure can never reach back into the
// lifecycle transition.
type PaymentReceipt struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	StudentName  string    `json:"student_name"`
	WhatsApp     string    `json:"-"`
	CourseTitle  string    `json:"course_title"`
}

type QuizResult struct {
	Score              float64 `json:"score"`
	IsPassed           bool    `json:"is_passed"`
	ProgressPercentage int     `json:"progress_percentage"`
}

// RegisterEnrollment creates a pending enrollment for the (student, course)
// pair. Uniqueness is enforced by the store's composite unique index: the
// conflict-aware insert either lands the row or affects nothing, so two
// concurrent registrations can never both succeed.
func RegisterEnrollment(db *gorm.DB, studentID, courseID uuid.UUID, paymentMethod string) (*models.Enrollment, error) {
	enrollment := models.Enrollment{
		StudentID:     studentID,
		CourseID:      courseID,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: paymentMethod,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&enrollment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrDuplicateEnrollment
	}

	return &enrollment, nil
}

// VerifyPayment marks the enrollment as paid and returns a receipt with the
// student's contact and the course title. Re-verifying an already paid
// enrollment is a harmless no-op update.
func VerifyPayment(db *gorm.DB, enrollmentID uuid.UUID) (*PaymentReceipt, error) {
	result := db.Model(&models.Enrollment{}).
		Where("id = ?", enrollmentID).
		Update("payment_status", models.PaymentStatusPaid)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrEnrollmentNotFound
	}

	var enrollment models.Enrollment
	if err := db.Preload("Student").Preload("Course").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		return nil, err
	}

	return &PaymentReceipt{
		EnrollmentID: enrollment.ID,
		StudentName:  enrollment.Student.FullName,
		WhatsApp:     enrollment.Student.WhatsApp,
		CourseTitle:  enrollment.Course.Title,
	}, nil
}

// CompleteLesson records the completion idempotently, recomputes the course
// progress from scratch and persists the percentage onto the enrollment, all
// inside one transaction so no other writer can race between the counts and
// the write-back. Completing the same lesson twice leaves the percentage
// unchanged.
func CompleteLesson(db *gorm.DB, studentID, lessonID, courseID uuid.UUID) (int, error) {
	var percentage int

	err := db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		completion := models.LessonCompletion{StudentID: studentID, LessonID: lessonID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(&completion).Error; err != nil {
			return err
		}

		pct, err := ComputeProgress(tx, studentID, courseID)
		if err != nil {
			return err
		}
		percentage = pct

		return tx.Model(&enrollment).Update("progress_percentage", pct).Error
	})
	if err != nil {
		return 0, err
	}

	return percentage, nil
}

// SubmitQuiz stores the score and the pass verdict on the enrollment.
// Resubmission overwrites the previous attempt; no history is kept. When
// saturateProgress is set, submission forces the progress percentage to 100
// regardless of how many lessons were completed.
func SubmitQuiz(db *gorm.DB, studentID, courseID uuid.UUID, score, passThreshold float64, saturateProgress bool) (*QuizResult, error) {
	passed := score >= passThreshold

	var quizResult QuizResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"quiz_score": score,
			"is_passed":  passed,
		}
		progress := enrollment.ProgressPercentage
		if saturateProgress {
			updates["progress_percentage"] = 100
			progress = 100
		}
		if err := tx.Model(&enrollment).Updates(updates).Error; err != nil {
			return err
		}

		quizResult = QuizResult{Score: score, IsPassed: passed, ProgressPercentage: progress}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &quizResult, nil
}

// IsCertificateEligible reports whether the student qualifies for a completion
// certificate: payment verified and quiz passed. A missing enrollment or an
// unattempted quiz both read as not eligible.
func IsCertificateEligible(db *gorm.DB, studentID, courseID uuid.UUID) (bool, error) {
	var enrollment models.Enrollment
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return enrollment.PaymentStatus == models.PaymentStatusPaid &&
		enrollment.IsPassed != nil && *enrollment.IsPassed, nil
}
