package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/database"
	"github.com/lpkfarafi/lms-backend/models"
	"github.com/lpkfarafi/lms-backend/services"
)

type LessonRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	LessonOrder int    `json:"lesson_order" validate:"gte=0"`
	ContentType string `json:"content_type" validate:"required,oneof=video document quiz"`
	ContentURL  string `json:"content_url"`
}

func CreateLesson(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson := models.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		LessonOrder: req.LessonOrder,
		ContentType: req.ContentType,
		ContentURL:  req.ContentURL,
	}

	if err := database.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create lesson"})
	}

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func ListCourseLessons(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	var lessons []models.Lesson
	err := database.DB.Where("course_id = ?", courseID).
		Order("lesson_order ASC").
		Find(&lessons).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch lessons"})
	}
	return c.JSON(lessons)
}

func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")
	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lesson.Title = req.Title
	lesson.LessonOrder = req.LessonOrder
	lesson.ContentType = req.ContentType
	lesson.ContentURL = req.ContentURL
	if err := database.DB.Save(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update lesson"})
	}

	return c.JSON(lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")
	result := database.DB.Delete(&models.Lesson{}, "id = ?", lessonID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete lesson"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteLesson marks the lesson done for the authenticated student and
// returns the freshly recomputed course progress.
func CompleteLesson(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lesson ID format"})
	}

	var lesson models.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Lesson not found"})
	}

	percentage, err := services.CompleteLesson(database.DB, studentID, lesson.ID, lesson.CourseID)
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "You are not enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record lesson completion"})
	}

	return c.JSON(fiber.Map{
		"message":             "Lesson completed",
		"progress_percentage": percentage,
	})
}
