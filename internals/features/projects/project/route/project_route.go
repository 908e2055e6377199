package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectController "kerjaku_backend/internals/features/projects/project/controller"
)

// ProjectUserRoutes — under /api/u
func ProjectUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	projects := api.Group("/projects")
	projects.Get("/", ctrl.GetMyProjects)
}

// ProjectAdminRoutes — under /api/a
func ProjectAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)
	clients := projectController.NewClientController(db)

	projects := api.Group("/projects")

	// clients before :id so the static segment wins
	cl := projects.Group("/clients")
	cl.Get("/", clients.GetClients)
	cl.Post("/", clients.CreateClient)
	cl.Get("/:id", clients.GetClient)
	cl.Patch("/:id", clients.UpdateClient)
	cl.Delete("/:id", clients.DeleteClient)

	projects.Get("/", ctrl.GetProjects)
	projects.Post("/", ctrl.CreateProject)
	projects.Get("/:id", ctrl.GetProject)
	projects.Patch("/:id", ctrl.UpdateProject)
	projects.Delete("/:id", ctrl.DeleteProject)
	projects.Post("/:id/members", ctrl.AddMember)
	projects.Delete("/:id/members/:userId", ctrl.RemoveMember)
}
