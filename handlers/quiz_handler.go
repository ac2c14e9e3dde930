package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/lpkfarafi/lms-backend/configs"
	"github.com/lpkfarafi/lms-backend/database"
	"github.com/lpkfarafi/lms-backend/models"
	"github.com/lpkfarafi/lms-backend/services"
)

type QuizQuestionRequest struct {
	QuestionText  string `json:"question_text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D a b c d"`
}

func passMark() float64 {
	mark, err := strconv.ParseFloat(config.ConfigOr("QUIZ_PASS_MARK", "75"), 64)
	if err != nil {
		return 75
	}
	return mark
}

func quizSaturatesProgress() bool {
	return config.ConfigOr("QUIZ_SATURATES_PROGRESS", "true") != "false"
}

func CreateQuizQuestion(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req QuizQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question := models.QuizQuestion{
		CourseID:      courseID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

func ListQuizQuestions(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	var questions []models.QuizQuestion
	if err := database.DB.Where("course_id = ?", courseID).Find(&questions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch questions"})
	}
	return c.JSON(questions)
}

func UpdateQuizQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	var question models.QuizQuestion
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req QuizQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question.QuestionText = req.QuestionText
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectOption = req.CorrectOption
	database.DB.Save(&question)

	return c.JSON(question)
}

func DeleteQuizQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	result := database.DB.Delete(&models.QuizQuestion{}, "id = ?", questionID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type SubmitQuizRequest struct {
	CourseID string  `json:"course_id" validate:"required,uuid"`
	Score    float64 `json:"score" validate:"gte=0,lte=100"`
}

// SubmitQuiz records a pre-computed score against the student's enrollment.
func SubmitQuiz(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	courseID, _ := uuid.Parse(req.CourseID)

	result, err := services.SubmitQuiz(database.DB, studentID, courseID, req.Score, passMark(), quizSaturatesProgress())
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "You are not enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save quiz result"})
	}

	return c.JSON(result)
}

type AttemptQuizRequest struct {
	Answers []struct {
		QuestionID     string `json:"question_id" validate:"required,uuid"`
		SelectedOption string `json:"selected_option" validate:"required,oneof=A B C D a b c d"`
	} `json:"answers" validate:"required,min=1,dive"`
}

// AttemptQuiz grades submitted answers against the course's question bank and
// stores the resulting score on the enrollment.
func AttemptQuiz(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}

	var req AttemptQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	answers := make([]services.QuizAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		questionID, err := uuid.Parse(a.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question ID format"})
		}
		answers = append(answers, services.QuizAnswer{
			QuestionID:     questionID,
			SelectedOption: a.SelectedOption,
		})
	}

	score, err := services.GradeQuizAnswers(database.DB, courseID, answers)
	if err != nil {
		if errors.Is(err, services.ErrNoQuizQuestions) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This course has no quiz"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to grade quiz"})
	}

	result, err := services.SubmitQuiz(database.DB, studentID, courseID, score, passMark(), quizSaturatesProgress())
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "You are not enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save quiz result"})
	}

	return c.JSON(result)
}
