package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "kerjaku_backend/internals/features/users/user/controller"
)

// UserUserRoutes — self-service endpoints under /api/u
func UserUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := api.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Patch("/me", ctrl.UpdateMe)
	users.Patch("/me/compliance", ctrl.UpdateMyCompliance)
}

// UserAdminRoutes — org administration under /api/a
func UserAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := api.Group("/users")
	users.Get("/", ctrl.GetUsers)
	users.Post("/", ctrl.CreateUser)
	users.Get("/:id", ctrl.GetUser)
	users.Patch("/:id", ctrl.UpdateUser)
	users.Delete("/:id", ctrl.DeleteUser)
	users.Get("/:id/reports", ctrl.GetUserReports)
}
