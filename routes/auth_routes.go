package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/register", handlers.RegisterUser)
	api.Post("/auth/login", handlers.LoginUser)
}
