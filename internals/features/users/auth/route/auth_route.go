package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "kerjaku_backend/internals/features/users/auth/controller"
	"kerjaku_backend/internals/middlewares"
)

// AuthRoutes — public endpoints, no auth middleware
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh-token", ctrl.RefreshToken)
}

// AuthProtectedRoutes — mounted under the authenticated group
func AuthProtectedRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Get("/me", ctrl.Me)
	auth.Post("/logout", ctrl.Logout)
	auth.Post("/change-password", ctrl.ChangePassword)
}
