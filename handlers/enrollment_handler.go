package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/database"
	"github.com/lpkfarafi/lms-backend/models"
	"github.com/lpkfarafi/lms-backend/notifications"
	"github.com/lpkfarafi/lms-backend/services"
)

type CreateEnrollmentRequest struct {
	CourseID      string `json:"course_id" validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=transfer cash ewallet"`
}

func CreateEnrollment(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	courseID, _ := uuid.Parse(req.CourseID)

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	enrollment, err := services.RegisterEnrollment(database.DB, studentID, courseID, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEnrollment) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You are already enrolled in this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create enrollment"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Enrollment created. Complete your payment to unlock the course.",
		"enrollment": enrollment,
	})
}

func ListMyEnrollments(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	query := database.DB.Preload("Course").Preload("Course.Instructor").
		Where("student_id = ?", studentID)
	if c.Query("all") != "true" {
		query = query.Where("payment_status = ?", models.PaymentStatusPaid)
	}

	var enrollments []models.Enrollment
	if err := query.Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}

	return c.JSON(enrollments)
}

func ListPendingPayments(c *fiber.Ctx) error {
	var pending []models.Enrollment
	err := database.DB.Preload("Student").Preload("Course").
		Where("payment_status = ?", models.PaymentStatusPending).
		Order("created_at ASC").
		Find(&pending).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(pending)
}

// VerifyPayment confirms a manual payment. The status flip is the durable
// fact; the WhatsApp confirmation goes out on a detached goroutine afterwards
// and its failure never changes the reported outcome.
func VerifyPayment(c *fiber.Ctx) error {
	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	receipt, err := services.VerifyPayment(database.DB, enrollmentID)
	if err != nil {
		if errors.Is(err, services.ErrEnrollmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify payment"})
	}

	message := fmt.Sprintf(
		"Hi %s, your payment for course \"%s\" has been confirmed. Happy learning!",
		receipt.StudentName, receipt.CourseTitle,
	)
	go notifications.SendWhatsApp(receipt.WhatsApp, message)

	return c.JSON(fiber.Map{
		"message": "Payment verified successfully",
		"receipt": receipt,
	})
}
