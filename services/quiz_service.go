package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/models"
	"gorm.io/gorm"
)

var ErrNoQuizQuestions = errors.New("course has no quiz questions")

type QuizAnswer struct {
	QuestionID     uuid.UUID
	SelectedOption string
}

// GradeQuizAnswers scores a set of answers against the course's question bank.
// The latest answer per question wins and unanswered questions count as wrong,
// so the score is always correct-out-of-total for the whole quiz.
func GradeQuizAnswers(db *gorm.DB, courseID uuid.UUID, answers []QuizAnswer) (float64, error) {
	var questions []models.QuizQuestion
	if err := db.Where("course_id = ?", courseID).Find(&questions).Error; err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 0, ErrNoQuizQuestions
	}

	correctByID := make(map[uuid.UUID]string, len(questions))
	for _, q := range questions {
		correctByID[q.ID] = q.CorrectOption
	}

	latest := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		latest[a.QuestionID] = a.SelectedOption
	}

	correct := 0
	for id, selected := range latest {
		if want, ok := correctByID[id]; ok && strings.EqualFold(want, selected) {
			correct++
		}
	}

	return float64(correct) * 100.0 / float64(len(questions)), nil
}
