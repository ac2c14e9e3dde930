package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/models"
	"gorm.io/gorm"
)

func seedQuizQuestions(t *testing.T, db *gorm.DB, courseID uuid.UUID, correctOptions []string) []models.QuizQuestion {
	t.Helper()

	questions := make([]models.QuizQuestion, 0, len(correctOptions))
	for i, correct := range correctOptions {
		question := models.QuizQuestion{
			CourseID:      courseID,
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			OptionA:       "Option A",
			OptionB:       "Option B",
			OptionC:       "Option C",
			OptionD:       "Option D",
			CorrectOption: correct,
		}
		if err := db.Create(&question).Error; err != nil {
			t.Fatalf("failed to create quiz question: %v", err)
		}
		questions = append(questions, question)
	}
	return questions
}

func TestGradeQuizAnswers(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, "Graded Course", 0)
	questions := seedQuizQuestions(t, db, course.ID, []string{"A", "B", "C", "D"})

	answers := []QuizAnswer{
		{QuestionID: questions[0].ID, SelectedOption: "A"},
		{QuestionID: questions[1].ID, SelectedOption: "B"},
		{QuestionID: questions[2].ID, SelectedOption: "C"},
		{QuestionID: questions[3].ID, SelectedOption: "A"},
	}

	score, err := GradeQuizAnswers(db, course.ID, answers)
	if err != nil {
		t.Fatalf("GradeQuizAnswers() error = %v", err)
	}
	if score != 75 {
		t.Errorf("score = %v, want 75", score)
	}
}

func TestGradeQuizAnswersUnansweredCountAsWrong(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, "Graded Course", 0)
	questions := seedQuizQuestions(t, db, course.ID, []string{"A", "B"})

	answers := []QuizAnswer{
		{QuestionID: questions[0].ID, SelectedOption: "A"},
	}

	score, err := GradeQuizAnswers(db, course.ID, answers)
	if err != nil {
		t.Fatalf("GradeQuizAnswers() error = %v", err)
	}
	if score != 50 {
		t.Errorf("score = %v, want 50", score)
	}
}

func TestGradeQuizAnswersLatestAnswerWins(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, "Graded Course", 0)
	questions := seedQuizQuestions(t, db, course.ID, []string{"A"})

	answers := []QuizAnswer{
		{QuestionID: questions[0].ID, SelectedOption: "B"},
		{QuestionID: questions[0].ID, SelectedOption: "A"},
	}

	score, err := GradeQuizAnswers(db, course.ID, answers)
	if err != nil {
		t.Fatalf("GradeQuizAnswers() error = %v", err)
	}
	if score != 100 {
		t.Errorf("score = %v, want 100 (latest answer should win)", score)
	}
}

func TestGradeQuizAnswersCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, "Graded Course", 0)
	questions := seedQuizQuestions(t, db, course.ID, []string{"A"})

	score, err := GradeQuizAnswers(db, course.ID, []QuizAnswer{
		{QuestionID: questions[0].ID, SelectedOption: "a"},
	})
	if err != nil {
		t.Fatalf("GradeQuizAnswers() error = %v", err)
	}
	if score != 100 {
		t.Errorf("score = %v, want 100", score)
	}
}

func TestGradeQuizAnswersNoQuestions(t *testing.T) {
	db := setupTestDB(t)
	course := createTestCourse(t, db, "Empty Course", 0)

	_, err := GradeQuizAnswers(db, course.ID, []QuizAnswer{
		{QuestionID: uuid.New(), SelectedOption: "A"},
	})
	if !errors.Is(err, ErrNoQuizQuestions) {
		t.Errorf("GradeQuizAnswers() error = %v, want ErrNoQuizQuestions", err)
	}
}
