package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/models"
)

func TestRegisterEnrollment(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Dewi")
	course := createTestCourse(t, db, "Web Development", 3)

	enrollment, err := RegisterEnrollment(db, student.ID, course.ID, "transfer")
	if err != nil {
		t.Fatalf("RegisterEnrollment() error = %v", err)
	}
	if enrollment.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment status = %q, want %q", enrollment.PaymentStatus, models.PaymentStatusPending)
	}
	if enrollment.ProgressPercentage != 0 {
		t.Errorf("progress = %d, want 0", enrollment.ProgressPercentage)
	}

	_, err = RegisterEnrollment(db, student.ID, course.ID, "transfer")
	if !errors.Is(err, ErrDuplicateEnrollment) {
		t.Errorf("second registration error = %v, want ErrDuplicateEnrollment", err)
	}

	var count int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	if count != 1 {
		t.Errorf("enrollment rows = %d, want 1", count)
	}
}

func TestRegisterEnrollmentDifferentCourses(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Dewi")
	first := createTestCourse(t, db, "Web Development", 3)
	second := createTestCourse(t, db, "Data Analysis", 2)

	if _, err := RegisterEnrollment(db, student.ID, first.ID, "transfer"); err != nil {
		t.Fatalf("RegisterEnrollment(first) error = %v", err)
	}
	if _, err := RegisterEnrollment(db, student.ID, second.ID, "cash"); err != nil {
		t.Errorf("RegisterEnrollment(second) error = %v, want nil", err)
	}
}

func TestVerifyPayment(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Budi")
	course := createTestCourse(t, db, "Digital Marketing", 2)

	enrollment, err := RegisterEnrollment(db, student.ID, course.ID, "transfer")
	if err != nil {
		t.Fatalf("RegisterEnrollment() error = %v", err)
	}

	receipt, err := VerifyPayment(db, enrollment.ID)
	if err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}
	if receipt.StudentName != "Budi" {
		t.Errorf("receipt student name = %q, want %q", receipt.StudentName, "Budi")
	}
	if receipt.WhatsApp != student.WhatsApp {
		t.Errorf("receipt whatsapp = %q, want %q", receipt.WhatsApp, student.WhatsApp)
	}
	if receipt.CourseTitle != "Digital Marketing" {
		t.Errorf("receipt course title = %q, want %q", receipt.CourseTitle, "Digital Marketing")
	}

	var updated models.Enrollment
	if err := db.First(&updated, "id = ?", enrollment.ID).Error; err != nil {
		t.Fatalf("failed to reload enrollment: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %q, want %q", updated.PaymentStatus, models.PaymentStatusPaid)
	}
}

func TestVerifyPaymentAlreadyPaid(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Budi")
	course := createTestCourse(t, db, "Digital Marketing", 2)

	enrollment, _ := RegisterEnrollment(db, student.ID, course.ID, "transfer")
	if _, err := VerifyPayment(db, enrollment.ID); err != nil {
		t.Fatalf("first VerifyPayment() error = %v", err)
	}

	// re-verifying is a harmless no-op update
	if _, err := VerifyPayment(db, enrollment.ID); err != nil {
		t.Errorf("second VerifyPayment() error = %v, want nil", err)
	}
}

func TestVerifyPaymentNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := VerifyPayment(db, uuid.New())
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("VerifyPayment() error = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestCompleteLessonProgression(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Siti")
	course := createTestCourse(t, db, "Graphic Design", 3)
	lessons := courseLessons(t, db, course.ID)

	enrollment, _ := RegisterEnrollment(db, student.ID, course.ID, "transfer")

	pct, err := CompleteLesson(db, student.ID, lessons[0].ID, course.ID)
	if err != nil {
		t.Fatalf("CompleteLesson(1) error = %v", err)
	}
	if pct != 33 {
		t.Errorf("progress after lesson 1 = %d, want 33", pct)
	}

	pct, err = CompleteLesson(db, student.ID, lessons[1].ID, course.ID)
	if err != nil {
		t.Fatalf("CompleteLesson(2) error = %v", err)
	}
	if pct != 67 {
		t.Errorf("progress after lesson 2 = %d, want 67", pct)
	}

	var updated models.Enrollment
	db.First(&updated, "id = ?", enrollment.ID)
	if updated.ProgressPercentage != 67 {
		t.Errorf("persisted progress = %d, want 67", updated.ProgressPercentage)
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Siti")
	course := createTestCourse(t, db, "Graphic Design", 3)
	lessons := courseLessons(t, db, course.ID)

	RegisterEnrollment(db, student.ID, course.ID, "transfer")

	first, err := CompleteLesson(db, student.ID, lessons[0].ID, course.ID)
	if err != nil {
		t.Fatalf("CompleteLesson() error = %v", err)
	}

	second, err := CompleteLesson(db, student.ID, lessons[0].ID, course.ID)
	if err != nil {
		t.Fatalf("repeat CompleteLesson() error = %v", err)
	}
	if second != first {
		t.Errorf("progress after repeat completion = %d, want %d (no double count)", second, first)
	}

	var count int64
	db.Model(&models.LessonCompletion{}).
		Where("student_id = ? AND lesson_id = ?", student.ID, lessons[0].ID).
		Count(&count)
	if count != 1 {
		t.Errorf("completion rows = %d, want 1", count)
	}
}

func TestCompleteLessonNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Stranger")
	course := createTestCourse(t, db, "Graphic Design", 3)
	lessons := courseLessons(t, db, course.ID)

	_, err := CompleteLesson(db, student.ID, lessons[0].ID, course.ID)
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("CompleteLesson() error = %v, want ErrEnrollmentNotFound", err)
	}

	// the rejected completion must not leave a record behind
	var count int64
	db.Model(&models.LessonCompletion{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 0 {
		t.Errorf("completion rows = %d, want 0", count)
	}
}

func TestSubmitQuiz(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		threshold  float64
		saturate   bool
		wantPassed bool
		wantPct    int
	}{
		{name: "pass with saturation", score: 80, threshold: 75, saturate: true, wantPassed: true, wantPct: 100},
		{name: "fail with saturation", score: 60, threshold: 75, saturate: true, wantPassed: false, wantPct: 100},
		{name: "pass without saturation", score: 80, threshold: 75, saturate: false, wantPassed: true, wantPct: 0},
		{name: "exactly at threshold", score: 75, threshold: 75, saturate: true, wantPassed: true, wantPct: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			student := createTestStudent(t, db, "Quiz Student")
			course := createTestCourse(t, db, "Quiz Course", 3)
			enrollment, _ := RegisterEnrollment(db, student.ID, course.ID, "transfer")

			result, err := SubmitQuiz(db, student.ID, course.ID, tt.score, tt.threshold, tt.saturate)
			if err != nil {
				t.Fatalf("SubmitQuiz() error = %v", err)
			}
			if result.IsPassed != tt.wantPassed {
				t.Errorf("IsPassed = %v, want %v", result.IsPassed, tt.wantPassed)
			}
			if result.ProgressPercentage != tt.wantPct {
				t.Errorf("ProgressPercentage = %d, want %d", result.ProgressPercentage, tt.wantPct)
			}

			var updated models.Enrollment
			db.First(&updated, "id = ?", enrollment.ID)
			if updated.QuizScore == nil || *updated.QuizScore != tt.score {
				t.Errorf("persisted quiz score = %v, want %v", updated.QuizScore, tt.score)
			}
			if updated.IsPassed == nil || *updated.IsPassed != tt.wantPassed {
				t.Errorf("persisted is_passed = %v, want %v", updated.IsPassed, tt.wantPassed)
			}
			if updated.ProgressPercentage != tt.wantPct {
				t.Errorf("persisted progress = %d, want %d", updated.ProgressPercentage, tt.wantPct)
			}
		})
	}
}

func TestSubmitQuizOverwritesPreviousAttempt(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Retry Student")
	course := createTestCourse(t, db, "Quiz Course", 3)
	enrollment, _ := RegisterEnrollment(db, student.ID, course.ID, "transfer")

	if _, err := SubmitQuiz(db, student.ID, course.ID, 60, 75, true); err != nil {
		t.Fatalf("first SubmitQuiz() error = %v", err)
	}
	if _, err := SubmitQuiz(db, student.ID, course.ID, 90, 75, true); err != nil {
		t.Fatalf("second SubmitQuiz() error = %v", err)
	}

	var updated models.Enrollment
	db.First(&updated, "id = ?", enrollment.ID)
	if updated.QuizScore == nil || *updated.QuizScore != 90 {
		t.Errorf("quiz score = %v, want 90 (resubmission overwrites)", updated.QuizScore)
	}
	if updated.IsPassed == nil || !*updated.IsPassed {
		t.Errorf("is_passed = %v, want true", updated.IsPassed)
	}
}

func TestSubmitQuizNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Stranger")
	course := createTestCourse(t, db, "Quiz Course", 3)

	_, err := SubmitQuiz(db, student.ID, course.ID, 80, 75, true)
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("SubmitQuiz() error = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestIsCertificateEligible(t *testing.T) {
	passed := true
	failed := false

	tests := []struct {
		name          string
		paymentStatus string
		isPassed      *bool
		want          bool
	}{
		{name: "paid and passed", paymentStatus: models.PaymentStatusPaid, isPassed: &passed, want: true},
		{name: "paid but failed", paymentStatus: models.PaymentStatusPaid, isPassed: &failed, want: false},
		{name: "paid quiz unattempted", paymentStatus: models.PaymentStatusPaid, isPassed: nil, want: false},
		{name: "pending and passed", paymentStatus: models.PaymentStatusPending, isPassed: &passed, want: false},
		{name: "pending quiz unattempted", paymentStatus: models.PaymentStatusPending, isPassed: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			student := createTestStudent(t, db, "Cert Student")
			course := createTestCourse(t, db, "Cert Course", 1)

			enrollment := models.Enrollment{
				StudentID:     student.ID,
				CourseID:      course.ID,
				PaymentStatus: tt.paymentStatus,
				IsPassed:      tt.isPassed,
			}
			if err := db.Create(&enrollment).Error; err != nil {
				t.Fatalf("failed to create enrollment: %v", err)
			}

			got, err := IsCertificateEligible(db, student.ID, course.ID)
			if err != nil {
				t.Fatalf("IsCertificateEligible() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsCertificateEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCertificateEligibleNotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Cert Student")
	course := createTestCourse(t, db, "Cert Course", 1)

	got, err := IsCertificateEligible(db, student.ID, course.ID)
	if err != nil {
		t.Fatalf("IsCertificateEligible() error = %v", err)
	}
	if got {
		t.Error("IsCertificateEligible() = true for missing enrollment, want false")
	}
}

// Full lifecycle: register -> verify -> two lesson completions -> quiz pass ->
// certificate eligible.
func TestEnrollmentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "Aisyah")
	course := createTestCourse(t, db, "Sewing Fundamentals", 3)
	lessons := courseLessons(t, db, course.ID)

	enrollment, err := RegisterEnrollment(db, student.ID, course.ID, "transfer")
	if err != nil {
		t.Fatalf("RegisterEnrollment() error = %v", err)
	}
	if enrollment.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("initial payment status = %q, want pending", enrollment.PaymentStatus)
	}

	receipt, err := VerifyPayment(db, enrollment.ID)
	if err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}
	if receipt.CourseTitle != "Sewing Fundamentals" {
		t.Errorf("receipt course title = %q", receipt.CourseTitle)
	}

	pct, err := CompleteLesson(db, student.ID, lessons[0].ID, course.ID)
	if err != nil || pct != 33 {
		t.Fatalf("CompleteLesson(1) = %d, %v; want 33, nil", pct, err)
	}
	pct, err = CompleteLesson(db, student.ID, lessons[1].ID, course.ID)
	if err != nil || pct != 67 {
		t.Fatalf("CompleteLesson(2) = %d, %v; want 67, nil", pct, err)
	}

	result, err := SubmitQuiz(db, student.ID, course.ID, 80, 75, true)
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}
	if !result.IsPassed || result.Score != 80 || result.ProgressPercentage != 100 {
		t.Errorf("quiz result = %+v, want passed with score 80 and progress 100", result)
	}

	eligible, err := IsCertificateEligible(db, student.ID, course.ID)
	if err != nil {
		t.Fatalf("IsCertificateEligible() error = %v", err)
	}
	if !eligible {
		t.Error("IsCertificateEligible() = false at end of lifecycle, want true")
	}
}
