package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/handlers"
	"github.com/lpkfarafi/lms-backend/middleware"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.ListCourses)
	api.Get("/courses/:courseId", handlers.GetCourse)
	api.Get("/courses/:courseId/lessons", handlers.ListCourseLessons)

	manage := api.Group("/courses", middleware.Protected(), middleware.InstructorRequired())
	manage.Post("", handlers.CreateCourse)
	manage.Put("/:courseId", handlers.UpdateCourse)
	manage.Delete("/:courseId", handlers.DeleteCourse)

	manage.Post("/:courseId/lessons", handlers.CreateLesson)
	manage.Put("/:courseId/lessons/:lessonId", handlers.UpdateLesson)
	manage.Delete("/:courseId/lessons/:lessonId", handlers.DeleteLesson)
}
