package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/handlers"
	"github.com/lpkfarafi/lms-backend/middleware"
)

func EnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	enrollments := api.Group("/enrollments", middleware.Protected())
	enrollments.Post("", handlers.CreateEnrollment)
	enrollments.Get("", handlers.ListMyEnrollments)

	lessons := api.Group("/lessons", middleware.Protected())
	lessons.Post("/:lessonId/complete", handlers.CompleteLesson)
}
