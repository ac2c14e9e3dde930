package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/database"
	"github.com/lpkfarafi/lms-backend/models"
)

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	query := database.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

func UpdateUserRole(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Role = req.Role
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user role"})
	}

	return c.JSON(fiber.Map{"message": "User role updated successfully", "user": user})
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}

	return c.JSON(fiber.Map{"message": "User status updated successfully", "is_active": user.IsActive})
}

func AdminDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	result := database.DB.Delete(&models.User{}, "id = ?", userID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var totalStudents, totalCourses, totalEnrollments, pendingPayments int64

	database.DB.Model(&models.User{}).Where("role = ?", "student").Count(&totalStudents)
	database.DB.Model(&models.Course{}).Count(&totalCourses)
	database.DB.Model(&models.Enrollment{}).Count(&totalEnrollments)
	database.DB.Model(&models.Enrollment{}).Where("payment_status = ?", models.PaymentStatusPending).Count(&pendingPayments)

	var revenue float64
	database.DB.Model(&models.Enrollment{}).
		Joins("JOIN courses ON enrollments.course_id = courses.id").
		Where("enrollments.payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(courses.price), 0)").
		Scan(&revenue)

	return c.JSON(fiber.Map{
		"total_students":    totalStudents,
		"total_courses":     totalCourses,
		"total_enrollments": totalEnrollments,
		"pending_payments":  pendingPayments,
		"total_revenue":     revenue,
	})
}
