package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/handlers"
	"github.com/lpkfarafi/lms-backend/middleware"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quiz := api.Group("/quiz", middleware.Protected())
	quiz.Get("/:courseId/questions", handlers.ListQuizQuestions)
	quiz.Post("/:courseId/attempt", handlers.AttemptQuiz)
	quiz.Post("/submit", handlers.SubmitQuiz)

	manage := api.Group("/courses/:courseId/quiz", middleware.Protected(), middleware.InstructorRequired())
	manage.Post("/questions", handlers.CreateQuizQuestion)
	manage.Put("/questions/:questionId", handlers.UpdateQuizQuestion)
	manage.Delete("/questions/:questionId", handlers.DeleteQuizQuestion)
}
