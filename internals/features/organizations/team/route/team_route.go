package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teamController "kerjaku_backend/internals/features/organizations/team/controller"
)

// TeamAdminRoutes — under /api/a
func TeamAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := teamController.NewTeamController(db)

	teams := api.Group("/teams")
	teams.Get("/", ctrl.GetTeams)
	teams.Post("/", ctrl.CreateTeam)
	teams.Get("/:id", ctrl.GetTeam)
	teams.Patch("/:id", ctrl.UpdateTeam)
	teams.Delete("/:id", ctrl.DeleteTeam)
	teams.Post("/:id/members", ctrl.AddMember)
	teams.Delete("/:id/members/:userId", ctrl.RemoveMember)
}
