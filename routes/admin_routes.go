package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lpkfarafi/lms-backend/handlers"
	"github.com/lpkfarafi/lms-backend/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/pending-payments", handlers.ListPendingPayments)
	admin.Post("/payments/:enrollmentId/verify", handlers.VerifyPayment)

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/role", handlers.UpdateUserRole)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.AdminDeleteUser)
}
