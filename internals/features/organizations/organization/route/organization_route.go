package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgController "kerjaku_backend/internals/features/organizations/organization/controller"
)

// OrganizationUserRoutes — under /api/u
func OrganizationUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrganizationController(db)

	orgs := api.Group("/organizations")
	orgs.Post("/", ctrl.CreateOrganization)
}

// OrganizationAdminRoutes — under /api/a
func OrganizationAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrganizationController(db)
	members := orgController.NewMemberController(db)

	orgs := api.Group("/organizations")
	orgs.Get("/current", ctrl.GetCurrent)
	orgs.Patch("/current", ctrl.UpdateCurrent)
	orgs.Patch("/current/settings", ctrl.UpdateCurrentSettings)

	m := api.Group("/members")
	m.Get("/", members.GetMembers)
	m.Post("/", members.CreateMember)
	m.Patch("/:id", members.UpdateMember)
	m.Delete("/:id", members.DeleteMember)
}
