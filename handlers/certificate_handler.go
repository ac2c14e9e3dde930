package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lpkfarafi/lms-backend/database"
	"github.com/lpkfarafi/lms-backend/models"
	"github.com/lpkfarafi/lms-backend/services"
)

// ListMyCertificates returns the student's passed enrollments, i.e. every
// course they are certificate-eligible for, with any issued certificate row.
func ListMyCertificates(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	var passed []models.Enrollment
	err = database.DB.Preload("Course").
		Where("student_id = ? AND payment_status = ? AND is_passed = ?", studentID, models.PaymentStatusPaid, true).
		Find(&passed).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch certificates"})
	}

	var issued []models.Certificate
	if err := database.DB.Where("student_id = ?", studentID).Find(&issued).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch certificates"})
	}

	return c.JSON(fiber.Map{
		"eligible_courses": passed,
		"issued":           issued,
	})
}

func IssueCertificate(c *fiber.Ctx) error {
	studentID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}

	certificate, err := services.IssueCertificate(database.DB, studentID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrNotEligible) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Complete the payment and pass the quiz to get your certificate"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to issue certificate"})
	}

	return c.Status(fiber.StatusCreated).JSON(certificate)
}
