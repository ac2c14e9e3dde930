package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/handlers"
	"github.com/lpkfarafi/lms-backend/middleware"
)

func CertificateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	certificates := api.Group("/certificates", middleware.Protected())
	certificates.Get("", handlers.ListMyCertificates)
	certificates.Post("/:courseId", handlers.IssueCertificate)
}
